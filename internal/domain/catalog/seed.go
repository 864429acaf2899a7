package catalog

import "github.com/shopspring/decimal"

const (
	StoreName     = "Everest Phone Shop"
	StoreLocation = "Urban Mall, Basement Floor, Osh, Kyrgyzstan"
	StorePhone    = "0755731717"
	StoreHours    = "Mon - Sun: 10:00 - 21:00"
)

// Seed returns the shop's device catalog in display order.
func Seed() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "iPhone 16 Pro Max",
			Brand:       "Apple",
			Price:       decimal.NewFromInt(1299),
			Image:       "https://picsum.photos/seed/iphone16/600/600",
			Description: "The ultimate iPhone with Titanium design and the A18 Pro chip.",
			Category:    CategoryFlagship,
			Specs: Specs{
				Screen:    `6.9" Super Retina XDR`,
				Processor: "A18 Pro",
				RAM:       "8GB",
				Storage:   "256GB/512GB/1TB",
				Camera:    "48MP Main | 12MP Ultra Wide | 12MP Telephoto",
			},
		},
		{
			ID:          "2",
			Name:        "Samsung Galaxy S24 Ultra",
			Brand:       "Samsung",
			Price:       decimal.NewFromInt(1199),
			Image:       "https://picsum.photos/seed/s24u/600/600",
			Description: "The AI smartphone that redefines what a phone can do.",
			Category:    CategoryFlagship,
			Specs: Specs{
				Screen:    `6.8" Dynamic AMOLED 2X`,
				Processor: "Snapdragon 8 Gen 3",
				RAM:       "12GB",
				Storage:   "256GB/512GB/1TB",
				Camera:    "200MP Main | 12MP Ultra Wide | 50MP Telephoto",
			},
		},
		{
			ID:          "3",
			Name:        "Google Pixel 9 Pro",
			Brand:       "Google",
			Price:       decimal.NewFromInt(999),
			Image:       "https://picsum.photos/seed/pixel9/600/600",
			Description: "Advanced AI meets the best camera system on a Pixel.",
			Category:    CategoryFlagship,
			Specs: Specs{
				Screen:    `6.7" LTPO OLED`,
				Processor: "Google Tensor G4",
				RAM:       "16GB",
				Storage:   "128GB/256GB/512GB",
				Camera:    "50MP Main | 48MP Ultra Wide | 48MP Telephoto",
			},
		},
		{
			ID:          "4",
			Name:        "Xiaomi 14 Ultra",
			Brand:       "Xiaomi",
			Price:       decimal.NewFromInt(1099),
			Image:       "https://picsum.photos/seed/xiaomi14/600/600",
			Description: "A masterpiece in collaboration with Leica.",
			Category:    CategoryFlagship,
			Specs: Specs{
				Screen:    `6.73" AMOLED`,
				Processor: "Snapdragon 8 Gen 3",
				RAM:       "16GB",
				Storage:   "512GB",
				Camera:    "50MP Quad Camera with Leica Optics",
			},
		},
		{
			ID:          "5",
			Name:        "Nothing Phone (2)",
			Brand:       "Nothing",
			Price:       decimal.NewFromInt(599),
			Image:       "https://picsum.photos/seed/nothing2/600/600",
			Description: "Unique design meets powerful performance.",
			Category:    CategoryMidRange,
			Specs: Specs{
				Screen:    `6.7" LTPO OLED`,
				Processor: "Snapdragon 8+ Gen 1",
				RAM:       "12GB",
				Storage:   "256GB",
				Camera:    "50MP Dual Main",
			},
		},
		{
			ID:          "6",
			Name:        "Redmi Note 13 Pro",
			Brand:       "Xiaomi",
			Price:       decimal.NewFromInt(349),
			Image:       "https://picsum.photos/seed/redminote13/600/600",
			Description: "Premium features at an accessible price point.",
			Category:    CategoryMidRange,
			Specs: Specs{
				Screen:    `6.67" AMOLED 120Hz`,
				Processor: "Helio G99-Ultra",
				RAM:       "8GB",
				Storage:   "256GB",
				Camera:    "200MP Main",
			},
		},
	}
}
