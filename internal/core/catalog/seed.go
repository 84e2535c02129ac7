package catalog

import "github.com/niksmo/office-catalog/internal/core/domain"

const placeholderImage = "/placeholder.svg?height=200&width=300"

// DefaultProducts returns the built-in catalog seed.
func DefaultProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          1,
			Name:        "Set de Bolígrafos Premium",
			Price:       1200,
			Description: "Set de bolígrafos de alta calidad con tinta gel premium para escritura suave",
			Brand:       "PaperMate",
			Category:    domain.CategoryPremium,
			Image:       placeholderImage,
			Favorite:    true,
		},
		{
			ID:          2,
			Name:        "Cuaderno Ejecutivo",
			Price:       800,
			Description: "Cuaderno estándar con buena relación calidad-precio para uso diario",
			Brand:       "Norma",
			Category:    domain.CategoryEstandar,
			Image:       placeholderImage,
		},
		{
			ID:          3,
			Name:        "Lápices Básicos Pack x12",
			Price:       500,
			Description: "Pack de lápices básicos para necesidades esenciales de escritura",
			Brand:       "Faber",
			Category:    domain.CategoryBasico,
			Image:       placeholderImage,
		},
		{
			ID:          4,
			Name:        "Archivador Premium",
			Price:       2500,
			Description: "Archivador de lujo con acabados premium y gran capacidad",
			Brand:       "Leitz",
			Category:    domain.CategoryPremium,
			Image:       placeholderImage,
		},
		{
			ID:          5,
			Name:        "Carpetas Estándar x10",
			Price:       1500,
			Description: "Set de carpetas estándar para organización de documentos",
			Brand:       "Wilson",
			Category:    domain.CategoryEstandar,
			Image:       placeholderImage,
			Favorite:    true,
		},
		{
			ID:          6,
			Name:        "Grapadora Básica",
			Price:       300,
			Description: "Grapadora básica para uso cotidiano en oficina",
			Brand:       "Rapid",
			Category:    domain.CategoryBasico,
			Image:       placeholderImage,
		},
	}
}
