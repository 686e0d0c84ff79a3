// internal/platform/validator/validator_test.go
package validator

import (
	"testing"

	"subprobe/internal/testutil"
)

func TestIsBaseDomain(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"simple", "example", true},
		{"with hyphen", "my-company", true},
		{"digits", "web3", true},
		{"uppercase is normalized", "Example", true},
		{"idn", "münchen", true},
		{"contains dot", "example.com", false},
		{"trailing dot", "example.", false},
		{"empty", "", false},
		{"spaces inside", "exam ple", false},
		{"leading hyphen", "-example", false},
		{"underscore", "my_company", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, IsBaseDomain(tt.input), tt.expected, "base domain validation")
		})
	}
}

func TestNormalizeBaseDomain(t *testing.T) {
	testutil.AssertEqual(t, NormalizeBaseDomain("  Example "), "example", "trim and lowercase")
	testutil.AssertEqual(t, NormalizeBaseDomain("münchen"), "xn--mnchen-3ya", "punycode")
}

func TestIsDomain(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"valid domain", "example.com", true},
		{"valid subdomain", "www.example.com", true},
		{"empty string", "", false},
		{"ip address", "192.168.1.1", false},
		{"invalid chars", "exam ple.com", false},
		{"single label", "localhost", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, IsDomain(tt.input), tt.expected, "domain validation")
		})
	}
}

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"www", "www", true},
		{" MAIL ", "mail", true},
		{"api.dev", "api.dev", true},
		{"_dmarc", "_dmarc", true},
		{".www.", "www", true},
		{"bücher", "xn--bcher-kva", true},
		{"", "", false},
		{"a b", "", false},
		{"-bad", "", false},
		{"api..dev", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := NormalizeLabel(tt.input)
			testutil.AssertEqual(t, ok, tt.ok, "label validity")
			testutil.AssertEqual(t, got, tt.want, "normalized label")
		})
	}
}

func TestNormalizeTLD(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"com", "com", true},
		{"CO.UK", "co.uk", true},
		{".net", "net", true},
		{"123", "", false},
		{"c_m", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := NormalizeTLD(tt.input)
			testutil.AssertEqual(t, ok, tt.ok, "tld validity")
			testutil.AssertEqual(t, got, tt.want, "normalized tld")
		})
	}
}

func TestIsPublicSuffix(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"com", true},
		{"net", true},
		{"co.uk", true},
		{"de", true},
		{"notarealsuffix", false},
		{"github.io", false}, // private section of the list
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			testutil.AssertEqual(t, IsPublicSuffix(tt.input), tt.expected, "public suffix")
		})
	}
}

func TestIsProxyURL(t *testing.T) {
	testutil.AssertTrue(t, IsProxyURL("http://127.0.0.1:8080"), "http proxy")
	testutil.AssertTrue(t, IsProxyURL("socks5://127.0.0.1:1080"), "socks proxy")
	testutil.AssertFalse(t, IsProxyURL("ftp://127.0.0.1"), "ftp is not a proxy scheme")
	testutil.AssertFalse(t, IsProxyURL("127.0.0.1:8080"), "missing scheme")
}
