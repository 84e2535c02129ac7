package httphandler

import "github.com/niksmo/office-catalog/internal/core/domain"

type (
	Product struct {
		ID          int    `json:"id"`
		Name        string `json:"name"`
		Price       int64  `json:"price"`
		Description string `json:"description"`
		Brand       string `json:"brand"`
		Category    string `json:"category"`
		Badge       string `json:"badge"`
		Type        string `json:"type"`
		Image       string `json:"image"`
		Favorite    bool   `json:"is_favorite"`
	}

	CartLine struct {
		Product  Product `json:"product"`
		Quantity int     `json:"quantity"`
		Subtotal int64   `json:"subtotal"`
	}

	Cart struct {
		Lines       []CartLine `json:"lines"`
		TotalItems  int        `json:"total_items"`
		TotalPrice  int64      `json:"total_price"`
		Notes       string     `json:"notes"`
		Submittable bool       `json:"submittable"`
	}
)

type (
	Filters struct {
		Categories []string `json:"categories"`
		Brands     []string `json:"brands"`
		Types      []string `json:"types"`
	}

	View struct {
		Tab        string  `json:"tab"`
		Category   string  `json:"category"`
		SearchTerm string  `json:"search_term"`
		Filters    Filters `json:"filters"`
	}

	CategoryItem struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	}

	Vocabulary struct {
		Categories []CategoryItem `json:"categories"`
		Brands     []string       `json:"brands"`
		Types      []string       `json:"types"`
	}
)

type (
	QuantityRequest struct {
		Quantity *int `json:"quantity"`
	}

	NotesRequest struct {
		Notes string `json:"notes"`
	}

	ToggleFilterRequest struct {
		Kind  string `json:"kind"`
		Value string `json:"value"`
	}

	ToggleFilterResponse struct {
		Kind     string `json:"kind"`
		Value    string `json:"value"`
		Selected bool   `json:"selected"`
	}

	FavoriteResponse struct {
		ID       int  `json:"id"`
		Favorite bool `json:"is_favorite"`
	}
)

func fromProduct(p domain.Product) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Brand:       p.Brand,
		Category:    string(p.Category),
		Badge:       p.Category.Badge(),
		Type:        p.Type(),
		Image:       p.Image,
		Favorite:    p.Favorite,
	}
}

func fromProducts(ps []domain.Product) []Product {
	out := make([]Product, len(ps))
	for i, p := range ps {
		out[i] = fromProduct(p)
	}
	return out
}

func fromOrderSummary(s domain.OrderSummary) Cart {
	c := Cart{
		Lines:       make([]CartLine, len(s.Lines)),
		TotalItems:  s.TotalItems,
		TotalPrice:  s.TotalPrice,
		Notes:       s.Notes,
		Submittable: s.Submittable(),
	}
	for i, l := range s.Lines {
		c.Lines[i] = CartLine{
			Product:  fromProduct(l.Product),
			Quantity: l.Quantity,
			Subtotal: l.Subtotal(),
		}
	}
	return c
}

func fromView(v domain.ViewState) View {
	return View{
		Tab:        string(v.Tab),
		Category:   v.Category,
		SearchTerm: v.SearchTerm,
		Filters: Filters{
			Categories: v.Filters.Categories.Values(),
			Brands:     v.Filters.Brands.Values(),
			Types:      v.Filters.Types.Values(),
		},
	}
}

func (v View) toDomain() domain.ViewState {
	return domain.ViewState{
		Tab:        domain.Tab(v.Tab),
		Category:   v.Category,
		SearchTerm: v.SearchTerm,
		Filters: domain.FilterSelection{
			Categories: domain.NewTagSet(v.Filters.Categories...),
			Brands:     domain.NewTagSet(v.Filters.Brands...),
			Types:      domain.NewTagSet(v.Filters.Types...),
		},
	}
}

func fromVocabulary(v domain.Vocabulary) Vocabulary {
	out := Vocabulary{
		Categories: make([]CategoryItem, len(v.Categories)),
		Brands:     v.Brands,
		Types:      v.Types,
	}
	for i, c := range v.Categories {
		out.Categories[i] = CategoryItem{ID: string(c), Label: c.Label()}
	}
	return out
}
