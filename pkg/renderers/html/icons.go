package html

import (
	"sync"

	"github.com/goliatone/go-skillswap/pkg/formschema"
)

const svgOpen = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" width="24" height="24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true">`

// landingIconMarkup holds the feature and call-to-action glyphs keyed by the
// names used in the landing content.
var landingIconMarkup = map[string]string{
	"users":       svgOpen + `<path d="M16 21v-2a4 4 0 0 0-4-4H6a4 4 0 0 0-4 4v2"></path><circle cx="9" cy="7" r="4"></circle><path d="M22 21v-2a4 4 0 0 0-3-3.87"></path><path d="M16 3.13a4 4 0 0 1 0 7.75"></path></svg>`,
	"book-open":   svgOpen + `<path d="M2 3h6a4 4 0 0 1 4 4v14a3 3 0 0 0-3-3H2z"></path><path d="M22 3h-6a4 4 0 0 0-4 4v14a3 3 0 0 1 3-3h7z"></path></svg>`,
	"calendar":    svgOpen + `<rect x="3" y="4" width="18" height="18" rx="2"></rect><line x1="16" y1="2" x2="16" y2="6"></line><line x1="8" y1="2" x2="8" y2="6"></line><line x1="3" y1="10" x2="21" y2="10"></line></svg>`,
	"star":        svgOpen + `<polyline points="12 2 15.09 8.26 22 9.27 17 14.14 18.18 21.02 12 17.77 5.82 21.02 7 14.14 2 9.27 8.91 8.26 12 2"></polyline></svg>`,
	"globe":       svgOpen + `<circle cx="12" cy="12" r="10"></circle><line x1="2" y1="12" x2="22" y2="12"></line><path d="M12 2a15.3 15.3 0 0 1 4 10 15.3 15.3 0 0 1-4 10 15.3 15.3 0 0 1-4-10 15.3 15.3 0 0 1 4-10z"></path></svg>`,
	"shield":      svgOpen + `<path d="M12 22s8-4 8-10V5l-8-3-8 3v7c0 6 8 10 8 10z"></path></svg>`,
	"arrow-right": svgOpen + `<path d="M5 12h14"></path><path d="m12 5 7 7-7 7"></path></svg>`,
}

var (
	landingIconsOnce sync.Once
	landingIcons     map[string]string
)

func landingIcon(name string) string {
	landingIconsOnce.Do(func() {
		landingIcons = make(map[string]string, len(landingIconMarkup))
		for key, markup := range landingIconMarkup {
			landingIcons[key] = formschema.SanitizeIcon(markup)
		}
	})
	return landingIcons[name]
}
