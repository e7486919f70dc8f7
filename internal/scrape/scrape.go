// Package scrape extrae el rating en vivo de una página de producto.
// Es un productor batch: alimenta la tabla perfumes, la API nunca depende de él.
package scrape

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// Sentinelas del extractor cuando la página no trae el dato.
const (
	UnknownName   = "Unknown"
	MissingRating = "N/A"
	MissingVotes  = "0"
)

// Result es lo extraído de una página de producto.
// Rating y votos quedan como texto: el refresco a DB decide si parsean.
type Result struct {
	Name          string
	CurrentRating string
	TotalVotes    string
	SourceURL     string
	ScrapedAt     time.Time
}

// Client hace el fetch con dos estrategias: un cliente con headers de navegador
// y, si el sitio devuelve 403, un reintento con el transport anti-Cloudflare.
type Client struct {
	http   *resty.Client
	bypass *resty.Client
}

// NewClient arma los dos clientes resty.
func NewClient() (*Client, error) {
	browser, err := newBrowserClient()
	if err != nil {
		return nil, err
	}

	bypass, err := newBrowserClient()
	if err != nil {
		return nil, err
	}
	bypass.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(bypass.GetClient().Transport)

	return &Client{http: browser, bypass: bypass}, nil
}

// newBrowserClient imita a un humano llegando desde Google: sin estos headers
// el sitio corta con 403 antes de servir la página.
func newBrowserClient() (*resty.Client, error) {
	client := resty.New()

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.SetTimeout(15 * time.Second)

	client.SetHeaders(map[string]string{
		"User-Agent":                "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
		"Accept-Language":           "en-US,en;q=0.9",
		"Referer":                   "https://www.google.com/",
		"Connection":                "keep-alive",
		"Upgrade-Insecure-Requests": "1",
		"Sec-Fetch-Dest":            "document",
		"Sec-Fetch-Mode":            "navigate",
		"Sec-Fetch-Site":            "cross-site",
		"Sec-Fetch-User":            "?1",
	})

	return client, nil
}

// Fetch trae la página y extrae el rating.
func (client *Client) Fetch(ctx context.Context, pageURL string) (Result, error) {
	response, err := client.http.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return Result{}, err
	}

	// 403: el request estándar fue bloqueado, reintento con bypass.
	if response.StatusCode() == 403 {
		response, err = client.bypass.R().SetContext(ctx).Get(pageURL)
		if err != nil {
			return Result{}, err
		}
	}

	if response.StatusCode() != 200 {
		return Result{}, fmt.Errorf("unexpected status %d fetching %s", response.StatusCode(), pageURL)
	}

	result, err := Extract(response.Body())
	if err != nil {
		return Result{}, err
	}
	result.SourceURL = pageURL
	result.ScrapedAt = time.Now()

	return result, nil
}

// Extract saca rating, votos y nombre del HTML.
// El sitio publica microdata (itemprop); para páginas viejas sin schema
// el nombre cae al primer <b> con texto.
func Extract(html []byte) (Result, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Name:          UnknownName,
		CurrentRating: MissingRating,
		TotalVotes:    MissingVotes,
	}

	if text := strings.TrimSpace(doc.Find(`span[itemprop="ratingValue"]`).First().Text()); text != "" {
		result.CurrentRating = text
	}
	if text := strings.TrimSpace(doc.Find(`span[itemprop="ratingCount"]`).First().Text()); text != "" {
		result.TotalVotes = text
	}

	if text := strings.TrimSpace(doc.Find(`h1[itemprop="name"]`).First().Text()); text != "" {
		result.Name = text
	} else {
		doc.Find("b").EachWithBreak(func(_ int, selection *goquery.Selection) bool {
			if text := strings.TrimSpace(selection.Text()); text != "" {
				result.Name = text
				return false
			}
			return true
		})
	}

	return result, nil
}
