package services

import "immobiliare-scraper/models"

// Italian label -> enum tables for the immobiliare source. Keys are the exact
// strings the website renders; lookups fall back to a case-insensitive pass
// before giving up.

var furnitureMap = map[string]models.FurnitureType{
	"Sì":                    models.FurnitureFull,
	"Parzialmente Arredato": models.FurniturePartial,
	"Solo Cucina Arredata":  models.FurnitureOnlyKitchen,
	"No":                    models.FurnitureNone,
}

var gardenMap = map[string]models.Garden{
	"Giardino privato": models.GardenPrivate,
	"Giardino comune":  models.GardenShared,
	"Nessun giardino":  models.GardenNone,
}

var kitchenMap = map[string]models.KitchenType{
	"Cucina abitabile":      models.KitchenHabitable,
	"Cucina a vista":        models.KitchenOpenView,
	"Cucina cucinotto":      models.KitchenKitchenette,
	"Cucina angolo cottura": models.KitchenCookingCorner,
	"Cucina semi abitabile": models.KitchenSemiHabitable,
}

var ownershipMap = map[string]models.OwnershipType{
	"Intera proprietà":      models.OwnershipFull,
	"Nuda proprietà":        models.OwnershipBare,
	"Diritto di superficie": models.OwnershipSurfaceRight,
}

var propertyClassMap = map[string]models.PropertyClass{
	"Classe immobile signorile": models.PropertyClassLuxury,
	"Classe immobile media":     models.PropertyClassMedium,
	"Classe immobile economica": models.PropertyClassEconomic,
	"Immobile di lusso":         models.PropertyClassHighEnd,
}

var conditionMap = map[string]models.PropertyCondition{
	"Ottimo / Ristrutturato": models.ConditionExcellentRenovated,
	"Da ristrutturare":       models.ConditionToRenovate,
	"Nuovo / In costruzione": models.ConditionNewUnderConstruction,
	"Buono / Abitabile":      models.ConditionGoodHabitable,
}

var propertyTypeMap = map[string]models.PropertyType{
	"Appartamento":            models.PropertyApartment,
	"Attico":                  models.PropertyPenthouse,
	"Loft":                    models.PropertyLoft,
	"Villa bifamiliare":       models.PropertySemiDetached,
	"Mansarda":                models.PropertyAttic,
	"Villa unifamiliare":      models.PropertyDetachedVilla,
	"Open space":              models.PropertyOpenSpace,
	"Terratetto unifamiliare": models.PropertyTerracedHouse,
	"Villa a schiera":         models.PropertyTownhouse,
	"Appartamento in villa":   models.PropertyVillaApartment,
	"Villa plurifamiliare":    models.PropertyMultiFamilyVilla,
	"Rustico":                 models.PropertyRusticHouse,
}

var tvSystemMap = map[string]models.TvSystem{
	"Impianto tv centralizzato":            models.TvCentralized,
	"Impianto tv con parabola satellitare": models.TvSatellite,
	"Impianto tv singolo":                  models.TvIndividual,
}

var windowMaterialMap = map[string]models.WindowMaterial{
	"legno":   models.WindowWood,
	"metallo": models.WindowMetal,
	"PVC":     models.WindowPVC,
}

// Contract labels are matched by substring containment, since the raw field
// mixes the contract with availability markers.
var contractMap = map[string]models.ContractType{
	"Vendita": models.ContractSale,
	"Affitto": models.ContractRent,
}

var energyClassMap = map[string]models.EnergyClass{
	"A":  models.EnergyClassA,
	"A+": models.EnergyClassAP,
	"A1": models.EnergyClassA1,
	"A2": models.EnergyClassA2,
	"A3": models.EnergyClassA3,
	"A4": models.EnergyClassA4,
	"B":  models.EnergyClassB,
	"C":  models.EnergyClassC,
	"D":  models.EnergyClassD,
	"E":  models.EnergyClassE,
	"F":  models.EnergyClassF,
	"G":  models.EnergyClassG,
}

// amenityFlags maps badge labels to setters on OtherFeatures.
var amenityFlags = map[string]func(*models.OtherFeatures, *bool){
	"Armadio a muro":            func(f *models.OtherFeatures, v *bool) { f.HasBuiltInWardrobe = v },
	"Caminetto":                 func(f *models.OtherFeatures, v *bool) { f.HasFireplace = v },
	"Campo da tennis":           func(f *models.OtherFeatures, v *bool) { f.HasTennisCourt = v },
	"Cancello elettrico":        func(f *models.OtherFeatures, v *bool) { f.HasElectricGate = v },
	"Cucina":                    func(f *models.OtherFeatures, v *bool) { f.HasKitchen = v },
	"Fibra ottica":              func(f *models.OtherFeatures, v *bool) { f.HasFiberOptic = v },
	"Giardino privato e comune": func(f *models.OtherFeatures, v *bool) { f.HasPrivateOrSharedGarden = v },
	"Idromassaggio":             func(f *models.OtherFeatures, v *bool) { f.HasHotTub = v },
	"Impianto di allarme":       func(f *models.OtherFeatures, v *bool) { f.HasAlarmSystem = v },
	"Mansarda":                  func(f *models.OtherFeatures, v *bool) { f.HasAttic = v },
	"Piscina":                   func(f *models.OtherFeatures, v *bool) { f.HasPool = v },
	"Porta blindata":            func(f *models.OtherFeatures, v *bool) { f.HasArmoredDoor = v },
	"Reception":                 func(f *models.OtherFeatures, v *bool) { f.HasReception = v },
	"Taverna":                   func(f *models.OtherFeatures, v *bool) { f.HasTavern = v },
	"VideoCitofono":             func(f *models.OtherFeatures, v *bool) { f.HasVideoIntercom = v },
}
