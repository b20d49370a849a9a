package immobiliare

// Locators maps logical page fields to CSS selectors. The defaults track the
// current immobiliare.it markup; a layout change only requires swapping this
// struct, not touching the extraction protocol.
type Locators struct {
	CookieAcceptButton string
	LoginPopup         string
	LoginPopupClose    string

	ListingAnchor string

	Title              string
	Price              string
	LocationPart       string
	LastUpdated        string
	EnergyClass        string
	MaintenanceFee     string
	PriceSqm           string
	LuxuryBadge        string
	FeatureBadge       string
	DescriptionTitle   string
	ReadAllButton      string
	DescriptionBody    string
	DialogOpenButton   string
	DialogContainer    string
	DialogFeature      string
	DialogFeatureKey   string
	DialogFeatureValue string
}

// DefaultLocators returns the selector set for immobiliare.it.
func DefaultLocators() Locators {
	return Locators{
		CookieAcceptButton: "#didomi-notice-agree-button",
		LoginPopup:         "div.ab-in-app-message.ab-modal",
		LoginPopupClose:    "button.ab-close-button",

		ListingAnchor: "a[href*='immobiliare.it/annunci']",

		Title:              "h1.styles_ld-title__title__Ww2Gb",
		Price:              "div.Price_price__mzj0D span",
		LocationPart:       "button.styles_ld-blockTitle__link__paCwh span.styles_ld-blockTitle__location__n2mZJ",
		LastUpdated:        "p.styles_ld-lastUpdate__rVBp6",
		EnergyClass:        "span.styles_ld-energyMainConsumptions__consumptionColorClass__o4IZg.styles_ld-energyRating__aCjct",
		MaintenanceFee:     "div.styles_ld-overview__expenses__hAJz9 span",
		PriceSqm:           "div.styles_ld-overview__priceSqm__xxPLh span",
		LuxuryBadge:        "div.styles_ld-luxuryBadge__kKNTs",
		FeatureBadge:       "div.styles_ld-featuresBadges__badge__M5rlB",
		DescriptionTitle:   "p.styles_ld-descriptionHeading__title__ifRR2",
		ReadAllButton:      "button.styles_in-readAll__action___B8HW",
		DescriptionBody:    "div.styles_in-readAll__04LDT div",
		DialogOpenButton:   "button.styles_ld-primaryFeatures__openDialogButton___8v4x",
		DialogContainer:    "div.nd-dialogFrame__container",
		DialogFeature:      "div.styles_ld-primaryFeaturesDialogSection__feature__Maf3F",
		DialogFeatureKey:   "dt.styles_ld-primaryFeaturesDialogSection__featureTitle__VI7c0",
		DialogFeatureValue: "dd.styles_ld-primaryFeaturesDialogSection__featureDescription__G9ZGQ",
	}
}
