package models

import "encoding/xml"

// XDefault is the alternate key search engines use when no locale matches.
const XDefault = "x-default"

// Alternate is one language variant of a sitemap entry.
type Alternate struct {
	Tag string `json:"tag"`
	URL string `json:"url"`
}

// Entry is one URL of the generated sitemap.
type Entry struct {
	URL          string `json:"url"`
	PageID       string `json:"page_id"`
	Locale       string `json:"locale,omitempty"`
	LastModified string `json:"lastmod"`
	// Alternates is keyed by locale code plus XDefault; AlternateOrder keeps
	// the configured locale order.
	Alternates     map[string]Alternate `json:"alternates,omitempty"`
	AlternateOrder []string             `json:"-"`
	Images         []string             `json:"images"`
}

// URLSet represents the structure of an XML sitemap.
type URLSet struct {
	XMLName    xml.Name `xml:"urlset"`
	Xmlns      string   `xml:"xmlns,attr"`
	XmlnsImage string   `xml:"xmlns:image,attr"`
	XmlnsXhtml string   `xml:"xmlns:xhtml,attr"`
	URLs       []URL    `xml:"url"`
}

// URL represents a single URL entry in the sitemap.
type URL struct {
	Loc     string      `xml:"loc"`
	LastMod string      `xml:"lastmod,omitempty"`
	Links   []XHTMLLink `xml:"xhtml:link"`
	Images  []Image     `xml:"image:image"`
}

// XHTMLLink is an alternate-language link of a URL.
type XHTMLLink struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// Image is an image attached to a URL.
type Image struct {
	Loc string `xml:"image:loc"`
}
