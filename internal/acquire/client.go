// Package acquire downloads the statistics workbooks listed on the
// publisher's document directory page and records them in a manifest.
package acquire

import (
	"cardstats/internal/telemetry"
	"cardstats/lib/restyutil"
	"fmt"
	"net/url"
	"regexp"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("cardstats.internal.acquire")

const (
	report_list_documents  = "list-documents"
	report_download        = "download"
	report_not_spreadsheet = "download-not-spreadsheet"
)

const (
	DefaultListingURL  = "https://rbidocs.rbi.org.in/rdocs/ATM/DOCs/"
	DefaultLinkPattern = `(?i)^ATM.*\.XLSX?$`
	DefaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
	DefaultTimeout     = 3 * time.Minute
)

type Config struct {
	ListingURL  string
	LinkPattern string
	UserAgent   string
	Timeout     time.Duration
	// maximum requests per second, 0 means unlimited
	RequestsPerSecond float64
	// optional, every request/response pair is dumped into this directory
	DumpDir string
}

type Client struct {
	http    *resty.Client
	listing *url.URL
	pattern *regexp.Regexp
	tel     telemetry.API
}

func NewClient(config Config, tel telemetry.API) (*Client, error) {
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	tel = telemetry.Scoped("acquire", tel)

	if config.ListingURL == "" {
		config.ListingURL = DefaultListingURL
	}
	if config.LinkPattern == "" {
		config.LinkPattern = DefaultLinkPattern
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}

	listing, err := url.Parse(config.ListingURL)
	if err != nil {
		return nil, fmt.Errorf("parse listing url: %w", err)
	}
	pattern, err := regexp.Compile(config.LinkPattern)
	if err != nil {
		return nil, fmt.Errorf("compile link pattern: %w", err)
	}

	httpClient := resty.New()
	httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	httpClient.SetHeader("user-agent", config.UserAgent)
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(listing.Hostname()))
	httpClient.SetTimeout(config.Timeout)

	if config.RequestsPerSecond > 0 {
		rateLimiter := rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1)
		httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return rateLimiter.Wait(req.Context())
		})
	}

	var output restyutil.InstrumentOutput
	if config.DumpDir != "" {
		fsOutput, err := restyutil.NewFilesystemOutput(config.DumpDir)
		if err != nil {
			return nil, err
		}
		output = fsOutput
	}
	restyutil.InstrumentClient(httpClient, tracer, output)

	return &Client{
		http:    httpClient,
		listing: listing,
		pattern: pattern,
		tel:     tel,
	}, nil
}
