// internal/chat/compose.go
package chat

import (
	"fmt"
	"math"
	"strings"

	"shop-assistant/internal/models"
)

// LinkResolver turns catalog slugs and image paths into frontend links.
type LinkResolver interface {
	ProductURL(slug string) string
	CategoryURL(slug string) string
	ImageURL(path string) string
}

// Composer renders replies from query results. Strict mode produces
// single-line pipe-delimited text for embedding widgets; conversational
// mode produces multi-line text.
type Composer struct {
	strict   bool
	shopName string
	links    LinkResolver
}

func NewComposer(strict bool, shopName string, links LinkResolver) *Composer {
	return &Composer{strict: strict, shopName: shopName, links: links}
}

// FormatVND renders an amount with '.' thousands separators and the
// currency suffix, e.g. 1250000 -> "1.250.000đ".
func FormatVND(v float64) string {
	n := int64(math.Round(v))
	neg := n < 0
	if neg {
		n = -n
	}
	digits := fmt.Sprintf("%d", n)
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)
	out := strings.Join(parts, ".")
	if neg {
		out = "-" + out
	}
	return out + "đ"
}

func (c *Composer) Greeting() models.Reply {
	if c.strict {
		return models.Reply{Text: "Chào bạn."}
	}
	return models.Reply{Text: "Chào bạn! Mình là trợ lý của " + c.shopName + "."}
}

func (c *Composer) ShopName() models.Reply {
	return models.Reply{Text: c.shopName}
}

// WhatProducts lists the newest categories and products. With no data at
// all the reply is the fixed no-data line.
func (c *Composer) WhatProducts(cats []models.Category, products []models.ProductSummary) models.Reply {
	var catLines []string
	for _, cat := range cats {
		line := cat.Name
		if u := c.links.CategoryURL(cat.Slug); u != "" {
			line += " → " + u
		}
		catLines = append(catLines, line)
	}

	var prdLines []string
	for _, p := range products {
		price := "—"
		if p.Price != nil {
			price = FormatVND(*p.Price)
		}
		line := fmt.Sprintf("%s (%s)", p.Name, price)
		if u := c.links.ProductURL(p.Slug); u != "" {
			line += " → " + u
		}
		prdLines = append(prdLines, line)
	}

	if c.strict {
		var parts []string
		if len(catLines) > 0 {
			parts = append(parts, "Danh mục: "+strings.Join(catLines, " | "))
		}
		if len(prdLines) > 0 {
			parts = append(parts, "SP mới: "+strings.Join(prdLines, " | "))
		}
		if len(parts) == 0 {
			return models.Reply{Text: "Chưa có dữ liệu."}
		}
		return models.Reply{Text: strings.Join(parts, " | ")}
	}

	var blocks []string
	if len(catLines) > 0 {
		blocks = append(blocks, "Danh mục:\n- "+strings.Join(catLines, "\n- "))
	}
	if len(prdLines) > 0 {
		blocks = append(blocks, "Sản phẩm mới:\n- "+strings.Join(prdLines, "\n- "))
	}
	if len(blocks) == 0 {
		return models.Reply{Text: "Chưa có dữ liệu."}
	}
	return models.Reply{Text: strings.Join(blocks, "\n\n")}
}

func (c *Composer) PriceStats(stats *models.PriceStats) models.Reply {
	if stats == nil {
		return models.Reply{Text: "Chưa có dữ liệu giá."}
	}
	text := fmt.Sprintf("SP: %d | Thấp nhất: %s | Cao nhất: %s | TB: %s",
		stats.Count, FormatVND(stats.Min), FormatVND(stats.Max), FormatVND(stats.Avg))
	return models.Reply{Text: text}
}

func (c *Composer) BestSellers(products []models.ProductSummary, days int) models.Reply {
	if len(products) == 0 {
		return models.Reply{Text: "Chưa có dữ liệu bán chạy."}
	}
	return models.Reply{
		Text:  fmt.Sprintf("Top bán chạy %d ngày", days),
		Cards: c.cards(products),
	}
}

func (c *Composer) Suggestions(products []models.ProductSummary) models.Reply {
	if len(products) == 0 {
		return models.Reply{Text: "Chưa có gợi ý phù hợp."}
	}
	return models.Reply{
		Text:  "Gợi ý sản phẩm",
		Cards: c.cards(products),
	}
}

func (c *Composer) Fallback() models.Reply {
	if c.strict {
		return models.Reply{Text: "Mình chưa hiểu câu này."}
	}
	return models.Reply{Text: "Mình chưa hiểu rõ câu này."}
}

func (c *Composer) cards(products []models.ProductSummary) []models.Card {
	cards := make([]models.Card, 0, len(products))
	for _, p := range products {
		var subtitle *string
		if p.Price != nil {
			s := FormatVND(*p.Price)
			subtitle = &s
		}
		cards = append(cards, models.Card{
			Title:    p.Name,
			Subtitle: subtitle,
			Image:    c.links.ImageURL(p.Image),
			URL:      c.links.ProductURL(p.Slug),
		})
	}
	return cards
}
