package models

// Enumerated domain values. The underlying strings are the exact labels used
// by the source website where the source exposes Italian text, so they can be
// stored and exported without a reverse mapping.

// Source identifies the listing website a record was scraped from.
type Source string

const SourceImmobiliare Source = "immobiliare"

// ContractType is the kind of contract a listing is offered under.
type ContractType string

const (
	ContractSale ContractType = "sale"
	ContractRent ContractType = "rent"
)

// CurrentAvailability reports whether the property is free or tenanted.
type CurrentAvailability string

const (
	AvailabilityAvailable CurrentAvailability = "available"
	AvailabilityOccupied  CurrentAvailability = "occupied"
)

// EnergyClass is the energy efficiency rating of the property.
type EnergyClass string

const (
	EnergyClassA  EnergyClass = "A"
	EnergyClassAP EnergyClass = "A+"
	EnergyClassA1 EnergyClass = "A1"
	EnergyClassA2 EnergyClass = "A2"
	EnergyClassA3 EnergyClass = "A3"
	EnergyClassA4 EnergyClass = "A4"
	EnergyClassB  EnergyClass = "B"
	EnergyClassC  EnergyClass = "C"
	EnergyClassD  EnergyClass = "D"
	EnergyClassE  EnergyClass = "E"
	EnergyClassF  EnergyClass = "F"
	EnergyClassG  EnergyClass = "G"
)

// FurnitureType describes how much of the property comes furnished.
type FurnitureType string

const (
	FurniturePartial     FurnitureType = "Parzialmente arredato"
	FurnitureFull        FurnitureType = "Completamente arredato"
	FurnitureOnlyKitchen FurnitureType = "Solo cucina arredata"
	FurnitureNone        FurnitureType = "No"
)

// Garden describes the garden attached to the property, if any.
type Garden string

const (
	GardenPrivate Garden = "Giardino privato"
	GardenShared  Garden = "Giardino comune"
	GardenNone    Garden = "Nessun giardino"
)

// KitchenType describes the kitchen layout.
type KitchenType string

const (
	KitchenHabitable     KitchenType = "Cucina abitabile"
	KitchenOpenView      KitchenType = "Cucina a vista"
	KitchenKitchenette   KitchenType = "Cucina cucinotto"
	KitchenCookingCorner KitchenType = "Cucina angolo cottura"
	KitchenSemiHabitable KitchenType = "Cucina semi abitabile"
)

// OwnershipType is the kind of ownership rights sold with the property.
type OwnershipType string

const (
	OwnershipFull         OwnershipType = "Intera proprietà"
	OwnershipBare         OwnershipType = "Nuda proprietà"
	OwnershipSurfaceRight OwnershipType = "Diritto di superficie"
)

// PropertyClass positions the property on the quality/market scale.
type PropertyClass string

const (
	PropertyClassLuxury   PropertyClass = "Classe immobile signorile"
	PropertyClassMedium   PropertyClass = "Classe immobile media"
	PropertyClassEconomic PropertyClass = "Classe immobile economica"
	PropertyClassHighEnd  PropertyClass = "Immobile di lusso"
)

// PropertyCondition classifies the state of repair of the property.
type PropertyCondition string

const (
	ConditionExcellentRenovated    PropertyCondition = "Ottimo / Ristrutturato"
	ConditionToRenovate            PropertyCondition = "Da ristrutturare"
	ConditionNewUnderConstruction  PropertyCondition = "Nuovo / In costruzione"
	ConditionGoodHabitable         PropertyCondition = "Buono / Abitabile"
)

// PropertyType is the Italian property subtype of the listing.
type PropertyType string

const (
	PropertyApartment        PropertyType = "Appartamento"
	PropertyPenthouse        PropertyType = "Attico"
	PropertyLoft             PropertyType = "Loft"
	PropertySemiDetached     PropertyType = "Villa bifamiliare"
	PropertyAttic            PropertyType = "Mansarda"
	PropertyDetachedVilla    PropertyType = "Villa unifamiliare"
	PropertyOpenSpace        PropertyType = "Open space"
	PropertyTerracedHouse    PropertyType = "Terratetto unifamiliare"
	PropertyTownhouse        PropertyType = "Villa a schiera"
	PropertyVillaApartment   PropertyType = "Appartamento in villa"
	PropertyMultiFamilyVilla PropertyType = "Villa plurifamiliare"
	PropertyRusticHouse      PropertyType = "Rustico"
)

// TvSystem is the television installation type.
type TvSystem string

const (
	TvCentralized TvSystem = "Impianto tv centralizzato"
	TvSatellite   TvSystem = "Impianto tv con parabola satellitare"
	TvIndividual  TvSystem = "Impianto tv singolo"
)

// WindowGlassType is the glazing of the window fixtures.
type WindowGlassType string

const (
	GlassSingle WindowGlassType = "vetro"
	GlassDouble WindowGlassType = "doppio vetro"
	GlassTriple WindowGlassType = "triplo vetro"
)

// WindowMaterial is the frame material of the window fixtures.
type WindowMaterial string

const (
	WindowWood  WindowMaterial = "legno"
	WindowMetal WindowMaterial = "metallo"
	WindowPVC   WindowMaterial = "PVC"
)
