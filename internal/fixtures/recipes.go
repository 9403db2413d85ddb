package fixtures

import "github.com/pageza/resep-nusantara/internal/models"

// Recipes is the sample recipe catalogue served by the fixture API
func Recipes() []models.Recipe {
	return []models.Recipe{
		{
			ID:            1,
			Name:          "Nasi Goreng Kampung",
			Description:   "Nasi goreng sederhana dengan terasi dan telur ceplok.",
			Category:      models.CategoryFood,
			PrepTime:      25,
			Servings:      2,
			ImageURL:      "https://images.resep-nusantara.test/nasi-goreng.jpg",
			AverageRating: 4.5,
			Ingredients:   []string{"2 piring nasi putih", "3 siung bawang merah", "1 sdt terasi", "2 butir telur", "Kecap manis"},
			Instructions:  []string{"Haluskan bawang merah dan terasi.", "Tumis bumbu hingga harum.", "Masukkan nasi dan kecap, aduk rata.", "Sajikan dengan telur ceplok."},
		},
		{
			ID:            7,
			Name:          "Rendang",
			Description:   "Daging sapi dimasak perlahan dalam santan dan rempah hingga kering.",
			Category:      models.CategoryFood,
			PrepTime:      180,
			Servings:      6,
			ImageURL:      "https://images.resep-nusantara.test/rendang.jpg",
			AverageRating: 4.9,
			Ingredients:   []string{"1 kg daging sapi", "1 liter santan", "Bumbu rendang halus", "2 batang serai", "Daun jeruk"},
			Instructions:  []string{"Rebus santan bersama bumbu.", "Masukkan daging, masak dengan api kecil.", "Aduk sesekali hingga santan mengering dan berminyak."},
		},
		{
			ID:            12,
			Name:          "Soto Ayam Lamongan",
			Description:   "Soto kuning dengan koya gurih.",
			Category:      models.CategoryFood,
			PrepTime:      60,
			Servings:      4,
			ImageURL:      "https://images.resep-nusantara.test/soto-ayam.jpg",
			AverageRating: 4.6,
			Ingredients:   []string{"1 ekor ayam kampung", "Kunyit", "Bawang putih", "Koya", "Soun"},
			Instructions:  []string{"Rebus ayam hingga empuk.", "Tumis bumbu kuning lalu masukkan ke kaldu.", "Suwir ayam dan sajikan dengan koya."},
		},
		{
			ID:           15,
			Name:         "Gado-Gado",
			Description:  "Sayuran rebus dengan saus kacang.",
			Category:     models.CategoryFood,
			PrepTime:     30,
			Servings:     3,
			ImageURL:     "https://images.resep-nusantara.test/gado-gado.jpg",
			Ingredients:  []string{"Kangkung", "Tauge", "Kentang rebus", "Tahu goreng", "Saus kacang"},
			Instructions: []string{"Rebus sayuran sebentar.", "Tata sayuran di piring.", "Siram dengan saus kacang."},
		},
		{
			ID:            21,
			Name:          "Es Cendol",
			Description:   "Cendol pandan dengan santan dan gula aren.",
			Category:      models.CategoryDrink,
			PrepTime:      20,
			Servings:      4,
			ImageURL:      "https://images.resep-nusantara.test/es-cendol.jpg",
			AverageRating: 4.7,
			Ingredients:   []string{"Cendol pandan", "Santan", "Gula aren cair", "Es serut"},
			Instructions:  []string{"Masukkan cendol ke gelas.", "Tambahkan gula aren dan santan.", "Beri es serut."},
		},
		{
			ID:            24,
			Name:          "Wedang Jahe",
			Description:   "Minuman jahe hangat dengan gula merah.",
			Category:      models.CategoryDrink,
			PrepTime:      15,
			Servings:      2,
			ImageURL:      "https://images.resep-nusantara.test/wedang-jahe.jpg",
			AverageRating: 4.3,
			Ingredients:   []string{"Jahe bakar", "Gula merah", "Serai", "Air"},
			Instructions:  []string{"Geprek jahe dan serai.", "Rebus bersama gula merah.", "Saring dan sajikan hangat."},
		},
		{
			ID:           30,
			Name:         "Es Teh Manis",
			Description:  "Teh melati dingin.",
			Category:     models.CategoryDrink,
			PrepTime:     5,
			Servings:     1,
			Ingredients:  []string{"Teh melati", "Gula pasir", "Es batu"},
			Instructions: []string{"Seduh teh.", "Tambahkan gula.", "Tuang ke gelas berisi es."},
		},
	}
}

// Reviews is the sample review set served by the fixture API
func Reviews() []models.Review {
	return []models.Review{
		{RecipeID: 7, User: "Sari", Comment: "Rendangnya empuk, bumbunya meresap.", Rating: 5},
		{RecipeID: 7, User: "Budi", Comment: "Butuh sabar tapi hasilnya mantap.", Rating: 4.8},
		{RecipeID: 1, User: "Dewi", Comment: "Cocok untuk sarapan.", Rating: 4.5},
		{RecipeID: 21, User: "Andi", Comment: "Segar sekali di siang hari."},
	}
}
