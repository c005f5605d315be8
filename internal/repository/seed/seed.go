// Package seed contém o dataset inicial gravado na primeira leitura de cada coleção.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"ctrlshirt/internal/domain"
)

// Demo descreve uma conta de demonstração com senha em texto puro.
// Essas contas também formam a allow-list de login da sessão.
type Demo struct {
	User     domain.User
	Password string
}

// DemoAccounts são as contas fixas da loja.
func DemoAccounts() []Demo {
	return []Demo{
		{User: domain.User{ID: "1", Name: "Admin User", Email: "admin@ctrlshirt.com", Role: domain.RoleAdmin}, Password: "admin"},
		{User: domain.User{ID: "2", Name: "Manager User", Email: "manager@ctrlshirt.com", Role: domain.RoleManager}, Password: "manager"},
		{User: domain.User{ID: "3", Name: "Customer Test", Email: "customer@test.com", Role: domain.RoleCustomer}, Password: "password"},
	}
}

// Users devolve os usuários iniciais. As senhas das contas de demonstração
// não são gravadas: o login delas passa pela allow-list da sessão.
func Users() []domain.User {
	demos := DemoAccounts()
	users := make([]domain.User, 0, len(demos))
	for _, d := range demos {
		users = append(users, d.User.WithoutPassword())
	}
	return users
}

// Categories devolve as categorias iniciais.
func Categories() []domain.Category {
	return []domain.Category{
		{ID: "1", Name: "Games Retrô", Slug: "games-retro"},
		{ID: "2", Name: "Sci-Fi", Slug: "sci-fi"},
		{ID: "3", Name: "Anime & Mangá", Slug: "anime-manga"},
		{ID: "4", Name: "Código & Tech", Slug: "codigo-tech"},
		{ID: "5", Name: "Humor Nerd", Slug: "humor-nerd"},
	}
}

type productSeed struct {
	id, name, slug, description, price, categoryID string
	images                                         []string
	tags                                           []string
}

var productSeeds = []productSeed{
	{"1", "Pixel Invader", "pixel-invader", "Uma camiseta clássica para os amantes de 8-bit.", "79.90", "1", []string{"https://picsum.photos/seed/p1/800/800", "https://picsum.photos/seed/p1-2/800/800"}, []string{"8-bit", "retro"}},
	{"2", "Console Wars Veteran", "console-wars-veteran", "Mostre de que lado você estava.", "89.90", "1", []string{"https://picsum.photos/seed/p2/800/800"}, []string{"console", "retro"}},
	{"3", "Galactic Empire Recruit", "galactic-empire-recruit", "Junte-se ao lado sombrio, nós temos cookies.", "84.90", "2", []string{"https://picsum.photos/seed/p3/800/800"}, []string{"sci-fi", "space"}},
	{"4", "Tardis Blueprint", "tardis-blueprint", "Maior por dentro.", "79.90", "2", []string{"https://picsum.photos/seed/p4/800/800"}, []string{"sci-fi", "doctor"}},
	{"5", "Shonen Power Level", "shonen-power-level", "É mais de 9000!", "99.90", "3", []string{"https://picsum.photos/seed/p5/800/800"}, []string{"anime", "shonen"}},
	{"6", "Ramen Ichiraku", "ramen-ichiraku", "O melhor ramen de Konoha.", "79.90", "3", []string{"https://picsum.photos/seed/p6/800/800"}, []string{"anime", "naruto"}},
	{"7", "Hello, World!", "hello-world", "O primeiro passo de todo dev.", "74.90", "4", []string{"https://picsum.photos/seed/p7/800/800"}, []string{"code", "dev"}},
	{"8", "Git Commit", "git-commit", `git commit -m "Nova camiseta estilosa"`, "84.90", "4", []string{"https://picsum.photos/seed/p8/800/800"}, []string{"code", "git"}},
	{"9", "It's a feature", "its-a-feature", "Não é um bug, é uma feature.", "79.90", "5", []string{"https://picsum.photos/seed/p9/800/800"}, []string{"humor", "dev"}},
	{"10", "D20 Critical Hit", "d20-critical-hit", "Para os mestres de RPG.", "89.90", "5", []string{"https://picsum.photos/seed/p10/800/800"}, []string{"rpg", "dnd"}},
}

// Products devolve o catálogo inicial. Estoques e avaliações são sorteados.
func Products() []domain.Product {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	products := make([]domain.Product, 0, len(productSeeds))
	for _, s := range productSeeds {
		products = append(products, domain.Product{
			ID:          s.id,
			Name:        s.name,
			Slug:        s.slug,
			Description: s.description,
			Price:       decimal.RequireFromString(s.price),
			CategoryID:  s.categoryID,
			Images:      s.images,
			Sizes:       randomSizes(rng),
			Reviews:     randomReviews(rng, s.id),
			Tags:        s.tags,
		})
	}
	return products
}

func randomSizes(rng *rand.Rand) []domain.ProductSize {
	sizes := make([]domain.ProductSize, 0, len(domain.AllSizes))
	for _, s := range domain.AllSizes {
		sizes = append(sizes, domain.ProductSize{Size: s, Stock: rng.Intn(50)})
	}
	return sizes
}

func randomReviews(rng *rand.Rand, productID string) []domain.Review {
	count := rng.Intn(5) + 1
	reviews := make([]domain.Review, 0, count)
	for i := 0; i < count; i++ {
		reviews = append(reviews, domain.Review{
			ID:      fmt.Sprintf("%s-review-%d", productID, i),
			Author:  fmt.Sprintf("User%d", rng.Intn(1000)),
			Rating:  rng.Intn(2) + 4,
			Comment: "Ótima camiseta, tecido de alta qualidade e estampa perfeita!",
			Date:    time.Now().Add(-time.Duration(rng.Int63n(int64(115 * 24 * time.Hour)))).UTC(),
		})
	}
	return reviews
}

// Orders devolve os pedidos iniciais do cliente de teste.
func Orders() []domain.Order {
	address := domain.ShippingAddress{
		FullName:   "Customer Test",
		Address:    "123 Test St",
		City:       "Testville",
		PostalCode: "12345-678",
		Country:    "Brasil",
	}
	now := time.Now().UTC()
	return []domain.Order{
		{
			ID:     "1",
			UserID: "3",
			Items: []domain.OrderItem{{ID: "item-1", CartItem: domain.CartItem{
				ProductID: "1", Name: "Pixel Invader", Price: decimal.RequireFromString("79.90"),
				Image: "https://picsum.photos/seed/p1/800/800", Size: domain.SizeM, Quantity: 1,
			}}},
			Subtotal:        decimal.RequireFromString("79.90"),
			Shipping:        decimal.RequireFromString("15.00"),
			Total:           decimal.RequireFromString("94.90"),
			Status:          domain.StatusDelivered,
			ShippingAddress: address,
			CreatedAt:       now.Add(-5 * 24 * time.Hour),
		},
		{
			ID:     "2",
			UserID: "3",
			Items: []domain.OrderItem{{ID: "item-2", CartItem: domain.CartItem{
				ProductID: "3", Name: "Galactic Empire Recruit", Price: decimal.RequireFromString("84.90"),
				Image: "https://picsum.photos/seed/p3/800/800", Size: domain.SizeG, Quantity: 2,
			}}},
			Subtotal:        decimal.RequireFromString("169.80"),
			Shipping:        decimal.RequireFromString("18.00"),
			Total:           decimal.RequireFromString("187.80"),
			Status:          domain.StatusShipped,
			ShippingAddress: address,
			CreatedAt:       now.Add(-2 * 24 * time.Hour),
		},
	}
}

// Coupons devolve os cupons iniciais.
func Coupons() []domain.Coupon {
	return []domain.Coupon{
		{ID: "1", Code: "GEEK10", DiscountPercentage: 10, IsActive: true},
		{ID: "2", Code: "CTRL20", DiscountPercentage: 20, IsActive: true},
		{ID: "3", Code: "EXPIRED", DiscountPercentage: 50, IsActive: false},
	}
}

// Settings devolve as configurações iniciais da loja.
func Settings() domain.Settings {
	return domain.Settings{
		StoreName:        "CtrlShirt",
		StoreDescription: "A complete online store for geek and nerd style t-shirts. Discover unique designs inspired by games, anime, technology, and pop culture. Find your next favorite loot!",
		ContactEmail:     "contato@ctrlshirt.com",
		ShippingCost:     decimal.RequireFromString("15.00"),
	}
}
