package constants

// Ресурсы API маркетплейса: /api/website/v1/<ресурс>/
const (
	ResourceDistricts  = "districts"
	ResourceCities     = "cities"
	ResourceUsers      = "users"
	ResourceTariffs    = "tariffs"
	ResourceCategories = "categories"
	ResourceBanners    = "banners"
	ResourceProperties = "properties"
	ResourcePages      = "pages"
	ResourcePayments   = "payments"
)

// Языки, которые понимает API (заголовок lang)
const (
	LangUzbek   = "uz"
	LangRussian = "ru"
	LangEnglish = "en"
)
