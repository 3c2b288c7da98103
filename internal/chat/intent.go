// internal/chat/intent.go
package chat

import (
	"regexp"
	"strconv"
	"strings"

	"shop-assistant/internal/models"
)

// Phrase lists are written the way customers type them, accents included.
// They run through Normalize at match time so list maintenance never has
// to care about the folded form.
var (
	shopNamePhrases = []string{
		"shop bạn tên gì", "ten shop", "ten cua hang", "shop ten gi", "ten ben ban",
	}

	whatProductsPhrases = []string{
		"shop nhung san pham nao", "shop co nhung san pham nao", "nhung san pham nao",
		"san pham nao", "danh sach san pham", "san pham hien co", "shop co gi", "co gi ban",
		"danh muc nao", "category nao",
	}

	timePhrases = []string{
		"may gio", "gio hien tai", "bay gio la may gio",
		"hom nay la ngay may", "ngay thang", "thoi gian bay gio",
		"gio bay gio", "ngay bay gio", "nay thu may", "hom nay thu may", "thu may",
	}

	priceKeyPhrases  = []string{"gia", "gia ban", "gia thanh", "price"}
	priceTypePhrases = []string{
		"cao nhat", "dat nhat", "max", "thap nhat", "re nhat", "min",
		"trung binh", "average", "avg",
	}

	bestSellerPhrases = []string{
		"ban chay", "best seller", "bestseller", "top ban",
		"nhieu don", "nhieu luot mua", "mua nhieu",
	}

	suggestPhrases = []string{
		"goi y", "goi i", "goi y san pham", "de xuat",
		"recommend", "suggest", "nen mua", "phu hop",
	}
)

var (
	productWordRe  = regexp.MustCompile(`\bsan pham\b`)
	questionWordRe = regexp.MustCompile(`\b(nao|gi)\b`)

	// Greeting tokens are too short for substring containment: folded
	// "nhieu" (bao nhieu, mua nhieu) contains "hi", so these match on
	// word boundaries. "xin chao" is covered by the "chao" token.
	greetingRe = regexp.MustCompile(`\b(chao|hello|hi|alo)\b`)
)

// containsAny reports whether the normalized haystack contains any of the
// phrases, each normalized before comparison.
func containsAny(norm string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(norm, Normalize(p)) {
			return true
		}
	}
	return false
}

// intentRule pairs a predicate with the intent it resolves to.
type intentRule struct {
	match  func(string) bool
	intent models.Intent
}

// Rule order is load-bearing: earlier rules win, so a message mentioning
// both a greeting and a price question greets.
var intentRules = []intentRule{
	{greetingRe.MatchString, models.IntentGreeting},
	{func(q string) bool { return containsAny(q, shopNamePhrases) }, models.IntentShopName},
	{matchWhatProducts, models.IntentWhatProducts},
	{func(q string) bool { return containsAny(q, timePhrases) }, models.IntentTimeQuery},
	{matchPriceStats, models.IntentPriceStats},
	{func(q string) bool { return containsAny(q, bestSellerPhrases) }, models.IntentBestSellers},
	{func(q string) bool { return containsAny(q, suggestPhrases) }, models.IntentSuggestProducts},
}

func matchWhatProducts(q string) bool {
	if containsAny(q, whatProductsPhrases) {
		return true
	}
	return productWordRe.MatchString(q) && questionWordRe.MatchString(q)
}

// matchPriceStats needs both a price keyword and an aggregate keyword.
// "gia" alone is too ambiguous to commit to a statistics query.
func matchPriceStats(q string) bool {
	return containsAny(q, priceKeyPhrases) && containsAny(q, priceTypePhrases)
}

// Classify resolves a normalized message to an intent. First matching rule
// wins; nothing matching means Fallback.
func Classify(norm string) models.Intent {
	for _, r := range intentRules {
		if r.match(norm) {
			return r.intent
		}
	}
	return models.IntentFallback
}

var (
	daysRe    = regexp.MustCompile(`(\d+)\s*(ngay|d)\b`)
	monthsRe  = regexp.MustCompile(`(\d+)\s*(thang|m)\b`)
	withinRe  = regexp.MustCompile(`trong\s+(\d+)\b`)
	recentRe  = regexp.MustCompile(`(\d+)\s+gan\s+day`)
)

// ParseDaysWindow extracts a look-back window in days from a normalized
// message ("30 ngay", "2 thang", "trong 7", "14 gan day"). The second
// return value is false when the message carries no window.
func ParseDaysWindow(norm string) (int, bool) {
	if m := daysRe.FindStringSubmatch(norm); m != nil {
		return atLeastOne(m[1], 1), true
	}
	if m := monthsRe.FindStringSubmatch(norm); m != nil {
		return atLeastOne(m[1], 30), true
	}
	if m := withinRe.FindStringSubmatch(norm); m != nil {
		return atLeastOne(m[1], 1), true
	}
	if m := recentRe.FindStringSubmatch(norm); m != nil {
		return atLeastOne(m[1], 1), true
	}
	return 0, false
}

func atLeastOne(digits string, scale int) int {
	n, _ := strconv.Atoi(digits)
	n *= scale
	if n < 1 {
		return 1
	}
	return n
}
