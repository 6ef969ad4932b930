// Command seed drops and recreates the catalog tables, then fills them
// with synthetic restaurants and menus around the Saint Petersburg center.
package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"strings"

	"vkarimov/food-delivery/internal/model"
	"vkarimov/food-delivery/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

var restaurantNames = []string{
	"Бургер Хаус", "Пицца Мания", "Суши Токио", "Тако Лока", "Паста Бар",
	"Стейк Хаус", "Китайский Дракон", "Индийские Специи", "Французское Бистро", "Итальянская Терраса",
	"Морские Деликатесы", "Вегетарианский Рай", "Мексиканская Фиеста", "Корейская Кухня", "Тайские Ароматы",
	"Греческая Таверна", "Турецкий Гурман", "Ливанский Дворик", "Испанская Паэлья", "Немецкая Пивная",
	"Американский Гриль", "Японская Кухня", "Перуанские Вкусы", "Бразильское Барбекю", "Аргентинский Гриль",
}

var cuisineTypes = []string{
	"Фастфуд", "Пицца", "Суши", "Мексиканская", "Итальянская",
	"Стейки", "Китайская", "Индийская", "Французская",
}

var streets = []string{
	"Невский", "Литейный", "Мойки", "Фонтанки", "Каменноостровский", "Васильевский", "Московский",
}

type menuSeed struct {
	name        string
	description string
	price       float64
	category    string
}

var menusByCuisine = map[string][]menuSeed{
	"Фастфуд": {
		{"Биг Бургер", "Сочный говяжий бургер", 350, "Основные блюда"},
		{"Картофель фри", "Хрустящий картофель", 150, "Гарниры"},
		{"Куриные наггетсы", "Нежные кусочки курицы", 250, "Основные блюда"},
	},
	"Пицца": {
		{"Маргарита", "Классическая пицца с моцареллой", 450, "Пицца"},
		{"Пепперони", "Острая пицца с колбасой", 520, "Пицца"},
		{"Четыре сыра", "Пицца с четырьмя видами сыра", 580, "Пицца"},
	},
	"Суши": {
		{"Филадельфия", "Ролл с лососем и сыром", 420, "Роллы"},
		{"Калифорния", "Ролл с крабом и авокадо", 380, "Роллы"},
		{"Сашими лосось", "Свежий лосось", 350, "Сашими"},
	},
	"Итальянская": {
		{"Карбонара", "Паста с беконом и сыром", 390, "Паста"},
		{"Лазанья", "Классическая лазанья", 450, "Основные блюда"},
		{"Ризотто", "Кремовый рис с грибами", 380, "Основные блюда"},
	},
}

var defaultMenu = []menuSeed{
	{"Фирменное блюдо", "Специальность заведения", 400, "Основные блюда"},
	{"Суп дня", "Горячий суп", 200, "Супы"},
	{"Десерт", "Сладкий десерт", 180, "Десерты"},
}

// Saint Petersburg center coordinates
const (
	baseLat = 59.9311
	baseLon = 30.3609
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	dbPool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	if err := dbPool.Ping(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	log.Println("Recreating schema...")
	if err := repository.ResetSchema(ctx, dbPool); err != nil {
		log.Fatalf("Schema reset failed: %v", err)
	}

	repo := repository.NewCatalogRepository(dbPool)

	count := 0
	err = repo.RunAtomic(ctx, func(ctx context.Context) error {
		for _, name := range restaurantNames {
			restaurant := generateRestaurant(name)
			id, err := repo.InsertRestaurant(ctx, restaurant)
			if err != nil {
				return err
			}

			menu, ok := menusByCuisine[restaurant.CuisineType]
			if !ok {
				menu = defaultMenu
			}
			for _, seed := range menu {
				item := &model.MenuItem{
					RestaurantID: id,
					ItemName:     seed.name,
					Description:  seed.description,
					Price:        seed.price + float64(rand.Intn(151)-50),
					Category:     seed.category,
				}
				if err := repo.InsertMenuItem(ctx, item); err != nil {
					return err
				}
			}
			count++
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Database initialized with %d restaurants and their menus", count)
}

func generateRestaurant(name string) *model.Restaurant {
	// Scatter within roughly 1-15km of the city center.
	angle := rand.Float64() * 2 * math.Pi
	offset := 0.01 + rand.Float64()*0.14
	cuisine := cuisineTypes[rand.Intn(len(cuisineTypes))]

	return &model.Restaurant{
		Name:         name,
		Address:      fmt.Sprintf("ул. %s, %d", streets[rand.Intn(len(streets))], 1+rand.Intn(150)),
		CuisineType:  cuisine,
		Rating:       math.Round((3.5+rand.Float64()*1.5)*10) / 10,
		DeliveryTime: 20 + rand.Intn(41),
		Lat:          baseLat + offset*math.Cos(angle),
		Lon:          baseLon + offset*math.Sin(angle),
		Description:  fmt.Sprintf("Уютный ресторан кухни «%s» с отличным сервисом и быстрой доставкой.", cuisine),
	}
}
