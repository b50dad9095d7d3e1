package enrich

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/FunnyFinger/terrarium-index-sub002/internal/util"
)

// ArafloraDescription scrapes the product description for a species from
// the Araflora shop: search page, follow the first product hit, pull the
// description block.
func (c *Client) ArafloraDescription(ctx context.Context, scientificName string) (*Result, error) {
	base := strings.TrimRight(c.cfg.ArafloraBaseURL, "/")
	doc, err := c.fetchDocument(ctx, base+"/search.php?search="+url.QueryEscape(scientificName))
	if err != nil || doc == nil {
		return nil, err
	}

	href, ok := doc.Find(".product-item a, .product a").First().Attr("href")
	if !ok {
		return nil, nil
	}
	if strings.HasPrefix(href, "/") {
		href = base + href
	}

	page, err := c.fetchDocument(ctx, href)
	if err != nil || page == nil {
		return nil, err
	}

	description := collapseText(page.Find("#product_description, .product-description, .description").First())
	if description == "" {
		return nil, nil
	}
	return &Result{Source: "araflora", Description: util.StringPtr(description)}, nil
}

// GrowTropicalsDescription does the same against the GrowTropicals shop.
func (c *Client) GrowTropicalsDescription(ctx context.Context, scientificName string) (*Result, error) {
	base := strings.TrimRight(c.cfg.GrowTropicalsBaseURL, "/")
	doc, err := c.fetchDocument(ctx, base+"/search?q="+url.QueryEscape(scientificName))
	if err != nil || doc == nil {
		return nil, err
	}

	href, ok := doc.Find(".product-card a, a.product-item__title").First().Attr("href")
	if !ok {
		return nil, nil
	}
	if strings.HasPrefix(href, "/") {
		href = base + href
	}

	page, err := c.fetchDocument(ctx, href)
	if err != nil || page == nil {
		return nil, err
	}

	description := collapseText(page.Find(".product__description, .product-single__description, .rte").First())
	if description == "" {
		return nil, nil
	}
	return &Result{Source: "growtropicals", Description: util.StringPtr(description)}, nil
}

// fetchDocument returns nil without error when the page does not exist;
// shop scrapes are opportunistic.
func (c *Client) fetchDocument(ctx context.Context, rawURL string) (*goquery.Document, error) {
	body, status, err := c.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound || len(body) == 0 {
		return nil, nil
	}
	return goquery.NewDocumentFromReader(strings.NewReader(string(body)))
}

func collapseText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}
