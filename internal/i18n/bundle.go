package i18n

// Bundle holds every display string the storefront needs for one language.
// Both bundles carry the same fields so callers never branch on language.
type Bundle struct {
	Language Language `json:"language"`

	FeaturedDevices string `json:"featured_devices"`
	FeaturedSub     string `json:"featured_sub"`
	Search          string `json:"search"`
	Filter          string `json:"filter"`
	All             string `json:"all"`
	Flagship        string `json:"flagship"`
	MidRange        string `json:"midrange"`
	Budget          string `json:"budget"`
	NoProducts      string `json:"no_products"`
	NoProductsSub   string `json:"no_products_sub"`
	AddToCart       string `json:"add_to_cart"`

	AdvancedFilters string `json:"advanced_filters"`
	Brands          string `json:"brands"`
	PriceRange      string `json:"price_range"`
	MinPrice        string `json:"min_price"`
	MaxPrice        string `json:"max_price"`
	ScreenSize      string `json:"screen_size"`
	AnySize         string `json:"any_size"`
	LargeScreen     string `json:"large_screen"`
	CameraQuality   string `json:"camera_quality"`
	HighResCamera   string `json:"high_res_camera"`
	ClearFilters    string `json:"clear_filters"`
	ApplyFilters    string `json:"apply_filters"`

	Cart        string `json:"cart"`
	EmptyCart   string `json:"empty_cart"`
	TotalAmount string `json:"total_amount"`
	Checkout    string `json:"checkout"`
	VisitUs     string `json:"visit_us"`

	TradeInSubtitle string `json:"trade_in_subtitle"`
	TradeInStep1    string `json:"trade_in_step1"`
	TradeInStep2    string `json:"trade_in_step2"`
	TradeInStep3    string `json:"trade_in_step3"`
	TradeInCTA      string `json:"trade_in_cta"`

	FooterAddress string `json:"footer_address"`

	AIName        string `json:"ai_name"`
	AIGreeting    string `json:"ai_greeting"`
	AIPlaceholder string `json:"ai_placeholder"`
	AIFooter      string `json:"ai_footer"`
	// AIEmptyReply is shown when the assistant answers with no text.
	AIEmptyReply string `json:"ai_empty_reply"`
	// AIServiceError is shown when the assistant cannot be reached.
	AIServiceError string `json:"ai_service_error"`
}

var bundles = map[Language]Bundle{
	Kyrgyz: {
		Language:        Kyrgyz,
		FeaturedDevices: "Сунушталган түзмөктөр",
		FeaturedSub:     "Оштогу эң мыкты смартфондор бир жерде.",
		Search:          "Телефон же бренд издөө...",
		Filter:          "Чыпка",
		All:             "Баары",
		Flagship:        "Флагмандар",
		MidRange:        "Орто класс",
		Budget:          "Бюджеттик",
		NoProducts:      "Эч нерсе табылган жок",
		NoProductsSub:   "Чыпкаларды өзгөртүп көрүңүз.",
		AddToCart:       "Себетке кошуу",

		AdvancedFilters: "Кеңейтилген чыпкалар",
		Brands:          "Бренддер",
		PriceRange:      "Баа диапазону",
		MinPrice:        "Мин. баа",
		MaxPrice:        "Макс. баа",
		ScreenSize:      "Экрандын өлчөмү",
		AnySize:         "Баары",
		LargeScreen:     "Чоң (6.5\"+)",
		CameraQuality:   "Камеранын сапаты",
		HighResCamera:   "Жогорку (100MP+)",
		ClearFilters:    "Тазалоо",
		ApplyFilters:    "Колдонуу",

		Cart:        "Себет",
		EmptyCart:   "Себетиңиз бош",
		TotalAmount: "Жалпы сумма",
		Checkout:    "Буйрутма берүү",
		VisitUs:     "Төлөм дүкөндө жүргүзүлөт. Urban Mall, цоколдук кабат.",

		TradeInSubtitle: "Эски телефонуңузду жаңысына алмаштырыңыз",
		TradeInStep1:    "Телефонуңузду алып келиңиз",
		TradeInStep2:    "Баалоо",
		TradeInStep3:    "Арзандатуу алыңыз",
		TradeInCTA:      "Trade-In жөнүндө кеңири",

		FooterAddress: "Urban Mall, цоколдук кабат, Ош, Кыргызстан",

		AIName:         "Everest AI",
		AIGreeting:     "Саламатсызбы! Мен Everest дүкөнүнүн AI жардамчысымын. Кайсы телефонду издеп жатасыз?",
		AIPlaceholder:  "Суроо жазыңыз...",
		AIFooter:       "AI жооптору ката камтышы мүмкүн",
		AIEmptyReply:   "Кечиресиз, түшүнө алган жокмун.",
		AIServiceError: "Техникалык мүчүлүштүк болуп жатат. Сураныч, Оштогу Urban Mall'дагы Everest дүкөнүнө келиңиз же 0755731717 номерине чалыңыз!",
	},
	Russian: {
		Language:        Russian,
		FeaturedDevices: "Рекомендуемые устройства",
		FeaturedSub:     "Лучшие смартфоны Оша в одном месте.",
		Search:          "Поиск телефона или бренда...",
		Filter:          "Фильтр",
		All:             "Все",
		Flagship:        "Флагманы",
		MidRange:        "Средний класс",
		Budget:          "Бюджетные",
		NoProducts:      "Ничего не найдено",
		NoProductsSub:   "Попробуйте изменить фильтры.",
		AddToCart:       "В корзину",

		AdvancedFilters: "Расширенные фильтры",
		Brands:          "Бренды",
		PriceRange:      "Диапазон цен",
		MinPrice:        "Мин. цена",
		MaxPrice:        "Макс. цена",
		ScreenSize:      "Размер экрана",
		AnySize:         "Любой",
		LargeScreen:     "Большой (6.5\"+)",
		CameraQuality:   "Качество камеры",
		HighResCamera:   "Высокое (100MP+)",
		ClearFilters:    "Сбросить",
		ApplyFilters:    "Применить",

		Cart:        "Корзина",
		EmptyCart:   "Ваша корзина пуста",
		TotalAmount: "Итого",
		Checkout:    "Оформить заказ",
		VisitUs:     "Оплата производится в магазине. Urban Mall, цокольный этаж.",

		TradeInSubtitle: "Обменяйте старый телефон на новый",
		TradeInStep1:    "Принесите телефон",
		TradeInStep2:    "Оценка",
		TradeInStep3:    "Получите скидку",
		TradeInCTA:      "Подробнее о Trade-In",

		FooterAddress: "Urban Mall, цокольный этаж, Ош, Кыргызстан",

		AIName:         "Everest AI",
		AIGreeting:     "Здравствуйте! Я AI-помощник магазина Everest. Какой телефон вы ищете?",
		AIPlaceholder:  "Напишите вопрос...",
		AIFooter:       "Ответы AI могут содержать ошибки",
		AIEmptyReply:   "Извините, я не смог это обработать.",
		AIServiceError: "Произошла техническая ошибка. Пожалуйста, посетите магазин Everest в Urban Mall Osh или позвоните по номеру 0755731717!",
	},
}

// For returns the bundle for lang, or the Default bundle for an unknown value.
func For(lang Language) Bundle {
	if b, ok := bundles[lang]; ok {
		return b
	}
	return bundles[Default]
}
