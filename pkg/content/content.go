// Package content holds the static marketing copy of the landing page.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed landing.yaml
var landingDocument []byte

// Landing is the full landing page copy.
type Landing struct {
	Brand      Brand    `json:"brand" yaml:"brand"`
	Nav        Nav      `json:"nav" yaml:"nav"`
	Hero       Hero     `json:"hero" yaml:"hero"`
	Categories []string `json:"categories" yaml:"categories"`
	Features   Features `json:"features" yaml:"features"`
	CTA        CTA      `json:"cta" yaml:"cta"`
	Footer     Footer   `json:"footer" yaml:"footer"`
	Login      Login    `json:"login" yaml:"login"`
}

type Brand struct {
	Name string `json:"name" yaml:"name"`
	Mark string `json:"mark" yaml:"mark"`
}

type Nav struct {
	Login  string `json:"login" yaml:"login"`
	Signup string `json:"signup" yaml:"signup"`
}

type Hero struct {
	Badge         string  `json:"badge" yaml:"badge"`
	Title         string  `json:"title" yaml:"title"`
	Highlight     string  `json:"highlight" yaml:"highlight"`
	Lead          string  `json:"lead" yaml:"lead"`
	Primary       string  `json:"primary" yaml:"primary"`
	Secondary     string  `json:"secondary" yaml:"secondary"`
	CategoryLimit int     `json:"categoryLimit" yaml:"categoryLimit"`
	MoreLabel     string  `json:"moreLabel" yaml:"moreLabel"`
	Images        []Image `json:"images" yaml:"images"`
}

type Image struct {
	Src    string `json:"src" yaml:"src"`
	Alt    string `json:"alt" yaml:"alt"`
	Offset string `json:"offset,omitempty" yaml:"offset"`
}

type Features struct {
	Title string    `json:"title" yaml:"title"`
	Lead  string    `json:"lead" yaml:"lead"`
	Items []Feature `json:"items" yaml:"items"`
}

type Feature struct {
	Icon        string `json:"icon" yaml:"icon"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

type CTA struct {
	Title  string `json:"title" yaml:"title"`
	Lead   string `json:"lead" yaml:"lead"`
	Button string `json:"button" yaml:"button"`
}

type Footer struct {
	Note string `json:"note" yaml:"note"`
}

type Login struct {
	Title         string `json:"title" yaml:"title"`
	Lead          string `json:"lead" yaml:"lead"`
	EmailLabel    string `json:"emailLabel" yaml:"emailLabel"`
	PasswordLabel string `json:"passwordLabel" yaml:"passwordLabel"`
	Submit        string `json:"submit" yaml:"submit"`
	SignupPrompt  string `json:"signupPrompt" yaml:"signupPrompt"`
	SignupLabel   string `json:"signupLabel" yaml:"signupLabel"`
}

// Default returns the embedded landing copy.
func Default() (*Landing, error) {
	return Parse(landingDocument)
}

// Parse decodes landing copy from YAML.
func Parse(data []byte) (*Landing, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("content: landing document is empty")
	}
	var landing Landing
	if err := yaml.Unmarshal(data, &landing); err != nil {
		return nil, fmt.Errorf("content: parse landing: %w", err)
	}
	if strings.TrimSpace(landing.Brand.Name) == "" {
		return nil, errors.New("content: brand name is required")
	}
	return &landing, nil
}

// HeroCategories returns the categories shown as badges in the hero.
func (l *Landing) HeroCategories() []string {
	if l == nil {
		return nil
	}
	limit := l.Hero.CategoryLimit
	if limit <= 0 || limit > len(l.Categories) {
		limit = len(l.Categories)
	}
	return append([]string(nil), l.Categories[:limit]...)
}
