// Package affiliate appends partner tracking parameters to merchant URLs.
package affiliate

import (
	"net/url"
	"strings"

	"Dealbies-Backend/internal/config"
)

// Rule maps a merchant domain fragment to the single query parameter
// that partner expects.
type Rule struct {
	Partner string // lower-case name matched against merchant hints
	Domain  string // substring matched against the URL hostname
	Key     string
	Value   string
}

// Rules is an ordered rule table; the first matching rule wins.
type Rules []Rule

// DefaultRules builds the partner table from configuration.
func DefaultRules(cfg config.Affiliate) Rules {
	return Rules{
		{Partner: "amazon", Domain: "amazon.", Key: "tag", Value: cfg.AmazonTag},
		{Partner: "flipkart", Domain: "flipkart.com", Key: "affid", Value: cfg.AffiliateID},
		{Partner: "myntra", Domain: "myntra.com", Key: "affiliate_id", Value: cfg.AffiliateID},
		{Partner: "ajio", Domain: "ajio.com", Key: "affiliate_id", Value: cfg.AffiliateID},
		{Partner: "nykaa", Domain: "nykaa.com", Key: "affiliate_id", Value: cfg.AffiliateID},
	}
}

// Match returns the rule for a hostname, falling back to the merchant hint.
func (rs Rules) Match(host, merchantHint string) (Rule, bool) {
	host = strings.ToLower(host)
	for _, r := range rs {
		if r.Domain != "" && strings.Contains(host, r.Domain) {
			return r, true
		}
	}

	hint := strings.ToLower(strings.TrimSpace(merchantHint))
	if hint == "" {
		return Rule{}, false
	}
	for _, r := range rs {
		if r.Partner != "" && strings.Contains(hint, r.Partner) {
			return r, true
		}
	}

	return Rule{}, false
}

// Augment returns rawURL with the matching partner parameter set.
// Unparseable URLs and URLs without a matching rule come back unchanged.
// Setting the key replaces any previous value, so applying Augment twice
// yields the same URL as applying it once.
func (rs Rules) Augment(rawURL, merchantHint string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}

	rule, ok := rs.Match(u.Hostname(), merchantHint)
	if !ok || rule.Key == "" {
		return rawURL
	}

	q, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		// ParseQuery drops pairs it cannot decode; keep the raw pairs instead
		u.RawQuery = setRawParam(u.RawQuery, rule.Key, rule.Value)
		return u.String()
	}
	q.Set(rule.Key, rule.Value)
	u.RawQuery = q.Encode()

	return u.String()
}

// setRawParam removes every key pair from a raw query and appends key=value.
// Other pairs are left byte-for-byte as they were.
func setRawParam(rawQuery, key, value string) string {
	var kept []string
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		name, _, _ := strings.Cut(pair, "=")
		if unescaped, err := url.QueryUnescape(name); err == nil {
			name = unescaped
		}
		if name == key {
			continue
		}
		kept = append(kept, pair)
	}
	kept = append(kept, url.QueryEscape(key)+"="+url.QueryEscape(value))
	return strings.Join(kept, "&")
}

// MerchantName derives a merchant name from a destination URL:
// "https://www.amazon.in/x" -> "amazon". Returns "" when the URL has no host.
func MerchantName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host == "" {
		return ""
	}
	if i := strings.IndexByte(host, '.'); i > 0 {
		return host[:i]
	}
	return host
}
