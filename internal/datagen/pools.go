package datagen

import "time"

// European storefront countries, weighted towards the largest markets.
var (
	countryCodes   = []string{"DE", "FR", "GB", "ES", "IT", "NL", "PL", "BE", "AT", "PT"}
	countryWeights = []int{25, 20, 15, 12, 10, 8, 5, 3, 1, 1}
)

var citiesByCountry = map[string][]string{
	"DE": {"Berlin", "Hamburg", "Munich", "Cologne", "Frankfurt"},
	"FR": {"Paris", "Lyon", "Marseille", "Toulouse", "Nice"},
	"GB": {"London", "Manchester", "Birmingham", "Leeds", "Glasgow"},
	"ES": {"Madrid", "Barcelona", "Valencia", "Seville", "Bilbao"},
	"IT": {"Rome", "Milan", "Naples", "Turin", "Bologna"},
	"NL": {"Amsterdam", "Rotterdam", "The Hague", "Utrecht", "Eindhoven"},
	"PL": {"Warsaw", "Krakow", "Wroclaw", "Gdansk", "Poznan"},
	"BE": {"Brussels", "Antwerp", "Ghent", "Bruges", "Liege"},
	"AT": {"Vienna", "Graz", "Linz", "Salzburg", "Innsbruck"},
	"PT": {"Lisbon", "Porto", "Braga", "Coimbra", "Faro"},
}

var firstNames = []string{
	"Anna", "Lukas", "Marie", "Jan", "Sofia", "Pierre", "Elena", "Marco",
	"Emma", "Thomas", "Julia", "David", "Laura", "Pablo", "Nina", "Piotr",
	"Clara", "Felix", "Isabel", "Max",
}

var lastNames = []string{
	"Mueller", "Schmidt", "Dubois", "Martin", "Garcia", "Rossi", "Jansen",
	"Kowalski", "Smith", "Brown", "Fernandez", "Bianchi", "Visser", "Novak",
	"Weber", "Laurent", "Costa", "Bakker", "Wagner", "Moreau",
}

var emailDomains = []string{
	"example.com", "mail.example.org", "post.example.net", "inbox.example.de",
}

var streetNames = []string{
	"Main Street", "Station Road", "Park Avenue", "Church Lane", "Market Square",
	"High Street", "Mill Road", "Garden Way", "Bridge Street", "Oak Drive",
}

var modelWords = []string{
	"Pro", "Plus", "Max", "Lite", "Classic", "Edge", "Prime", "Ultra", "Mini", "Neo",
}

var descriptionTails = []string{
	"built for everyday use",
	"designed with durable materials",
	"a customer favourite in its category",
	"updated model for this season",
	"ships in recyclable packaging",
}

var paymentMethods = []string{
	"credit_card", "debit_card", "paypal", "bank_transfer", "klarna",
}

type productTemplate struct {
	brands   []string
	products []productSpec
}

type productSpec struct {
	name     string
	minPrice float64
	maxPrice float64
}

var categories = []string{
	"electronics", "clothing", "home_garden", "sports", "books", "toys", "beauty", "food",
}

var productTemplates = map[string]productTemplate{
	"electronics": {
		brands: []string{"Samsung", "Apple", "Sony", "LG", "Philips", "Xiaomi"},
		products: []productSpec{
			{"Smartphone", 299, 899}, {"Laptop", 499, 1999}, {"Tablet", 199, 999},
			{"Headphones", 29, 349}, {"Smart Watch", 99, 499}, {"TV", 299, 2499},
			{"Camera", 199, 1499}, {"Speaker", 49, 399},
		},
	},
	"clothing": {
		brands: []string{"Nike", "Adidas", "Zara", "Levi's", "Uniqlo"},
		products: []productSpec{
			{"T-Shirt", 15, 59}, {"Jeans", 39, 129}, {"Jacket", 59, 249},
			{"Sneakers", 49, 199}, {"Dress", 29, 149}, {"Hoodie", 35, 99},
		},
	},
	"home_garden": {
		brands: []string{"IKEA", "Bosch", "Dyson", "Philips", "Gardena"},
		products: []productSpec{
			{"Vacuum Cleaner", 99, 599}, {"Coffee Machine", 49, 399}, {"Lamp", 19, 149},
			{"Chair", 49, 299}, {"Table", 79, 499}, {"Plant Pot", 9, 49},
		},
	},
	"sports": {
		brands: []string{"Nike", "Adidas", "Puma", "Reebok", "Decathlon"},
		products: []productSpec{
			{"Running Shoes", 59, 199}, {"Yoga Mat", 15, 79}, {"Dumbbells Set", 29, 199},
			{"Bicycle", 199, 999}, {"Tennis Racket", 29, 199}, {"Fitness Tracker", 49, 249},
		},
	},
	"books": {
		brands: []string{"Penguin", "HarperCollins", "Macmillan", "Hachette"},
		products: []productSpec{
			{"Fiction Novel", 9, 29}, {"Non-Fiction Book", 12, 39}, {"Technical Manual", 29, 89},
			{"Cookbook", 15, 45}, {"Biography", 14, 34},
		},
	},
	"toys": {
		brands: []string{"LEGO", "Hasbro", "Mattel", "Playmobil", "Nintendo"},
		products: []productSpec{
			{"Building Blocks Set", 19, 149}, {"Board Game", 15, 69}, {"Action Figure", 9, 49},
			{"Puzzle", 9, 39}, {"Video Game", 39, 69},
		},
	},
	"beauty": {
		brands: []string{"L'Oreal", "Nivea", "Dove", "Clinique"},
		products: []productSpec{
			{"Face Cream", 9, 89}, {"Shampoo", 5, 29}, {"Perfume", 29, 149},
			{"Makeup Kit", 19, 99}, {"Hair Dryer", 19, 129},
		},
	},
	"food": {
		brands: []string{"Nestle", "Kraft", "Kellogg's", "Unilever"},
		products: []productSpec{
			{"Coffee Beans 1kg", 9, 29}, {"Chocolate Box", 7, 39}, {"Protein Bars Pack", 12, 39},
			{"Olive Oil 1L", 8, 24}, {"Tea Collection", 9, 29},
		},
	},
}

// seasonWeight is the keep probability per month during rejection sampling
// of order dates. November and December always keep their draw.
var seasonWeight = map[time.Month]float64{
	time.January: 0.7, time.February: 0.6, time.March: 0.7, time.April: 0.8,
	time.May: 0.8, time.June: 0.7, time.July: 0.6, time.August: 0.7,
	time.September: 0.9, time.October: 0.8, time.November: 1.0, time.December: 1.0,
}
