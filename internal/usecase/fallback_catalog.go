package usecase

import "gretastore/internal/domain/entity"

// fallbackCatalog keeps the storefront populated when the backend has no
// products or cannot be reached.
var fallbackCatalog = []entity.Product{
	{
		ID:            1,
		Name:          "Atado de Espinaca",
		Price:         4.00,
		Category:      "Verduras",
		Rating:        5.0,
		Sales:         120,
		Image:         "https://images.unsplash.com/photo-1576045057995-568f588f82fb?q=80&w=2000&auto=format&fit=crop",
		Description:   "Espinaca orgánica recién cosechada, rica en hierro y vitaminas. Ideal para ensaladas o cocida.",
		NutritionInfo: "Calorías: 23\nHierro: 2.7mg\nVitamina A: 9377IU",
		ShippingInfo:  "Envío refrigerado disponible. Entrega en 24 horas.",
	},
	{
		ID:            2,
		Name:          "Tomates Rojos",
		Price:         3.50,
		Category:      "Verduras",
		Rating:        4.9,
		Sales:         85,
		Image:         "https://images.unsplash.com/photo-1592924357228-91a4daadcfea?q=80&w=2000&auto=format&fit=crop",
		Description:   "Tomates jugosos y dulces, cultivados sin pesticidas sintéticos.",
		NutritionInfo: "Calorías: 18\nVitamina C: 13.7mg",
		ShippingInfo:  "Envío estándar en caja protectora.",
	},
	{
		ID:            3,
		Name:          "Zanahorias",
		Price:         2.99,
		Category:      "Verduras",
		Rating:        4.8,
		Sales:         200,
		Image:         "https://images.unsplash.com/photo-1598170845058-32b9d6a5da37?q=80&w=2000&auto=format&fit=crop",
		Description:   "Zanahorias crujientes, perfectas para snacks saludables.",
		NutritionInfo: "Calorías: 41\nVitamina A: 334%",
		ShippingInfo:  "Envío estándar.",
	},
	{
		ID:            4,
		Name:          "Pimientos Verdes",
		Price:         1.80,
		Category:      "Verduras",
		Rating:        4.7,
		Sales:         45,
		Image:         "https://images.unsplash.com/photo-1563514227149-5616d548e606?q=80&w=2000&auto=format&fit=crop",
		Description:   "Pimientos frescos con un toque crujiente y sabor suave.",
		NutritionInfo: "Calorías: 20\nVitamina C: 80.4mg",
		ShippingInfo:  "Envío estándar.",
	},
	{
		ID:            5,
		Name:          "Brócoli Orgánico",
		Price:         3.20,
		Category:      "Verduras",
		Rating:        4.9,
		Sales:         90,
		Image:         "https://images.unsplash.com/photo-1459411621453-7b03977f4bfc?q=80&w=2000&auto=format&fit=crop",
		Description:   "Brócoli lleno de nutrientes, cosechado en su punto óptimo.",
		NutritionInfo: "Calorías: 34\nFibra: 2.6g",
		ShippingInfo:  "Envío refrigerado recomendado.",
	},
	{
		ID:            6,
		Name:          "Manojo de Albahaca",
		Price:         2.50,
		Category:      "Hierbas",
		Rating:        5.0,
		Sales:         60,
		Image:         "https://images.unsplash.com/photo-1618160702438-9b02ab6515c9?q=80&w=2000&auto=format&fit=crop",
		Description:   "Albahaca aromática, esencial para la cocina italiana y pesto.",
		NutritionInfo: "Calorías: 22\nVitamina K: 415mcg",
		ShippingInfo:  "Envío delicado.",
	},
	{
		ID:            7,
		Name:          "Papas Nativas",
		Price:         5.50,
		Category:      "Verduras",
		Rating:        4.8,
		Sales:         150,
		Image:         "https://images.unsplash.com/photo-1518977676601-b53f82aba655?q=80&w=2000&auto=format&fit=crop",
		Description:   "Variedad de papas nativas peruanas, texturas y colores únicos.",
		NutritionInfo: "Calorías: 77\nPotasio: 421mg",
		ShippingInfo:  "Envío en malla transpirable.",
	},
	{
		ID:            8,
		Name:          "Fresas Dulces",
		Price:         8.00,
		Category:      "Frutas",
		Rating:        4.9,
		Sales:         300,
		Image:         "https://images.unsplash.com/photo-1464965911861-746a04b4b032?q=80&w=2000&auto=format&fit=crop",
		Description:   "Fresas rojas y dulces, perfectas para postres o comer solas.",
		NutritionInfo: "Calorías: 32\nVitamina C: 58.8mg",
		ShippingInfo:  "Envío refrigerado urgente.",
	},
}

// FallbackCatalog returns a fresh copy of the built-in catalog.
func FallbackCatalog() []entity.Product {
	return cloneProducts(fallbackCatalog)
}

func cloneProducts(in []entity.Product) []entity.Product {
	out := make([]entity.Product, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}
