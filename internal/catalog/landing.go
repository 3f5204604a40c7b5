package catalog

// CarouselEntry is one tile of the landing page category carousel.
type CarouselEntry struct {
	Title string `json:"title"`
	Image string `json:"image"`
	Href  string `json:"href"`
}

// FAQItem is one landing page question.
type FAQItem struct {
	Icon     string `json:"icon"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Landing is the static content of the landing page.
type Landing struct {
	Carousel []CarouselEntry `json:"carousel"`
	FAQ      []FAQItem       `json:"faq"`
}

var carousel = []CarouselEntry{
	{"Apvadų kampai", "/images/landing/apvadu-kampai.webp", "/produktai/apvadu-kampai"},
	{"Architravai", "/images/landing/architravai.webp", "/produktai/architravai"},
	{"Arkiniai elementai", "/images/landing/arkiniai-elementai.webp", "/produktai/arkiniai-elementai"},
	{"Arkiniai apvadai", "/images/landing/arkiniai-apvadai.webp", "/produktai/arkiniai-apvadai"},
	{"Balustrados pagrindai", "/images/landing/balustrados-pagrindai.webp", "/produktai/balustrados-pagrindai"},
	{"Balustrados porankiai", "/images/landing/balustrados-porankiai.webp", "/produktai/balustrados-porankiai"},
	{"Balustrai", "/images/landing/balustrai.webp", "/produktai/balustrai"},
	{"Rustikai", "/images/landing/rustikai.webp", "/produktai/rustikai"},
	{"Durų dekora", "/images/landing/duru-dekora.webp", "/produktai/duru-dekora"},
	{"Fasado ornamentai", "/images/landing/fasado-ornamentai.webp", "/produktai/fasado-ornamentai"},
	{"Fasado frontonai", "/images/landing/fasado-frontonai.webp", "/produktai/fasado-frontonai"},
	{"Fasado galiniai elementai", "/images/landing/fasado-galiniai-elementai.webp", "/produktai/fasado-galiniai-elementai"},
	{"Frizai", "/images/landing/frizai.webp", "/produktai/frizai"},
	{"Gembės", "/images/landing/gembes.webp", "/produktai/gembes"},
	{"Grindų apvadai", "/images/landing/grindu-apvadai.webp", "/produktai/grindjuostes"},
	{"Lango arkiniai rėmai", "/images/landing/lango-arkiniai-remai.webp", "/produktai/lango-arkiniai-remai"},
	{"Langų Angokras", "/images/landing/lango-soniniai-apvadai.webp", "/produktai/lango-soniniai-apvadai"},
	{"Lango angokrastai", "/images/landing/lango-angokrastai.webp", "/produktai/lango-angokrastai"},
	{"Lubų apvadai", "/images/landing/lubu-apvadai.webp", "/produktai/lubu-apvadai"},
	{"Lubų panelės", "/images/landing/lubu-paneles.webp", "/produktai/lubu-paneles"},
	{"Kolonos", "/images/landing/kolonos.webp", "/produktai/kolonos"},
	{"Kolonos liemuo", "/images/landing/kolonos-liemuo.webp", "/produktai/kolonos-liemuo"},
	{"Lauko palangės", "/images/landing/palanges.webp", "/produktai/lauko-palanges"},
	{"Nišos", "/images/landing/nisos.webp", "/produktai/nisos"},
	{"Pedimentai", "/images/landing/pedimentai.webp", "/produktai/pedimentai"},
	{"Pjedestalinės gembės", "/images/landing/pjedestalines-gembes.webp", "/produktai/pjedestalines-gembes"},
	{"Platbandai", "/images/landing/platbandai.webp", "/produktai/platbandai"},
	{"Stulpo Kepurės", "/images/landing/stulpo-kepures.webp", "/produktai/stulpo-kepures"},
	{"Rozetės", "/images/landing/rozetes.webp", "/produktai/rozetes"},
	{"Sieninis dekoras", "/images/landing/sieninis-dekoras.webp", "/produktai/sieninis-dekoras"},
	{"Sienų apvadai", "/images/landing/sienu-apvadai.webp", "/produktai/sienu-apvadai"},
	{"Sienų plokštės", "/images/landing/sienu-paneles.webp", "/produktai/sienu-paneles"},
	{"Statulėlės", "/images/landing/statuleles.webp", "/produktai/statuleles"},
	{"Stulpo kepurė", "/images/landing/stulpo-kepure.webp", "/produktai/stulpo-kepure"},
	{"Židinio dekoracija", "/images/landing/zidinio-dekoracija.webp", "/produktai/zidinio-dekoracija"},
	{"Žiedai", "/images/landing/ziedai.webp", "/produktai/ziedai"},
	{"Ornamentai", "/images/landing/ornamentai.webp", "/produktai/ornamentai"},
	{"Puskolonos", "/images/landing/puskolonos.webp", "/produktai/puskolonos"},
	{"Papildomi elementai", "/images/landing/papildomi-elementai.webp", "/produktai/papildomi-elementai"},
	{"Pagrindai", "/images/landing/pagrindai.webp", "/produktai/pagrindai"},
	{"Riedamieji elementai", "/images/landing/riejamieji-elementai.webp", "/produktai/riejamieji-elementai"},
}

var faq = []FAQItem{
	{"Truck", "Pristatymo sąlygos ir terminai", "• Standartinis pristatymas: 1-4 savaitės\n• Nemokamas pristatymas užsakymams virš 1000€\n• Atsiėmimas sandėlyje Alytuje\n• Siuntinių sekimas realiuoju laiku\n• Pristatymas darbo dienomis 9:00-18:00"},
	{"Shield", "Garantija ir grąžinimas", "Kokybės garantija\n• Nemokamas keitimas brakuotoms prekėms\n• 100% pinigų grąžinimas (atėmus pristatymą)\n• Garantija apima gamybos defektus\n• Netaikoma mechaniniams pažeidimams"},
	{"CreditCard", "Mokėjimo būdai ir saugumas", "• Banko kortelės: Visa, Mastercard, Maestro\n• Bankiniai pavedimai\n• PayPal mokėjimai\n• 256-bit SSL šifravimas\n• PCI DSS saugumo standartai"},
	{"Clock", "Klientų aptarnavimas ir konsultacijos", "• Darbo laikas: kasdien 8:00-20:00\n• Telefonas: +370 671 77164\n• El. paštas: info@dekoratoriai.lt\n• Atsakymas per 2 valandas\n• Individualūs projektai\n• Susitikimai salone Alytuje\n• Produktų pavyzdžių apžiūra"},
	{"MapPin", "Montavimo ir įrengimo paslaugos", "• Profesionalus montavimas visoje Lietuvoje\n• Kaina nuo 100€\n• Nemokamas matavimų vizitas\n• Sertifikuoti specialistai\n• Profesionali įranga\n• 12 mėnesių montavimo garantija\n• Darbo vietos valymas po montavimo\n• Pakuočių išgabenimas\n• Skubus montavimas per 24-48h"},
	{"CheckCircle", "Užsakymo sekimas ir pakeitimas", "• Patvirtinimas per 1 darbo dieną\n• Unikalus sekimo numeris\n• SMS ir el. pašto informacija\n• Būsenos tikrinimas paskyroje"},
}

// LandingContent returns the landing page content. The carousel lists each
// category once even where the tile set repeats a destination.
func LandingContent() Landing {
	seen := make(map[string]bool, len(carousel))
	tiles := make([]CarouselEntry, 0, len(carousel))
	for _, e := range carousel {
		if seen[e.Href] {
			continue
		}
		seen[e.Href] = true
		tiles = append(tiles, e)
	}
	return Landing{
		Carousel: tiles,
		FAQ:      append([]FAQItem(nil), faq...),
	}
}

// DefaultCategories derives one Category per carousel destination. Data
// files are expected at "<key>.json".
func DefaultCategories() []Category {
	var cats []Category
	for _, e := range LandingContent().Carousel {
		key := e.Href[len("/produktai/"):]
		cats = append(cats, Category{
			Key:           key,
			Title:         e.Title,
			BaseURL:       e.Href,
			ImageSuffixes: DefaultImageSuffixes,
			MaxImages:     len(DefaultImageSuffixes),
		})
	}
	return cats
}

// DefaultImageSuffixes are tried in order when resolving product images.
var DefaultImageSuffixes = []string{".webp", "-1.webp", "-2.webp", "-3.webp"}
