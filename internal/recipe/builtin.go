package recipe

import "github.com/hammamikhairi/ottostep/internal/domain"

func builtins() []*domain.Recipe {
	return []*domain.Recipe{
		{
			ID:          "garlic-butter-pasta",
			Name:        "Garlic Butter Pasta",
			Description: "Weeknight spaghetti with garlic, butter and parmesan.",
			Servings:    2,
			Tags:        []string{"italian", "pasta", "quick", "vegetarian"},
			Ingredients: []string{
				"250 g spaghetti",
				"4 cloves garlic",
				"3 tbsp butter",
				"1 tbsp olive oil",
				"1/2 cup grated parmesan",
				"salt and black pepper",
			},
			Instructions: []string{
				"Bring a large pot of salted water to a boil.",
				"Mince the garlic finely while the water heats.",
				"Add the spaghetti and boil for 9 minutes until al dente. Reserve a cup of pasta water.",
				"Heat the olive oil and butter in a skillet and saute the garlic for 1 minute.",
				"Toss the drained pasta in the pan, fold in the parmesan and season with salt and pepper.",
			},
		},
		{
			ID:          "tomato-soup",
			Name:        "Creamy Tomato Soup",
			Description: "Slow-simmered tomato soup finished with cream.",
			Servings:    4,
			Tags:        []string{"soup", "vegetarian", "comfort"},
			Ingredients: []string{
				"1 onion",
				"2 cloves garlic",
				"800 g canned tomatoes",
				"500 ml vegetable stock",
				"100 ml cream",
				"2 tbsp butter",
			},
			Instructions: []string{
				"Dice the onion and chop the garlic.",
				"Melt the butter in a large pot and saute the onion for 5 minutes.",
				"Add the garlic and cook for 30 seconds.",
				"Add the tomatoes and stock, then simmer for 25 minutes.",
				"Blend until smooth, stir in the cream and heat gently. Season to taste.",
			},
		},
		{
			ID:          "chocolate-lava-cakes",
			Name:        "Chocolate Lava Cakes",
			Description: "Molten-centre chocolate cakes baked in ramekins.",
			Servings:    4,
			Tags:        []string{"dessert", "baking", "chocolate"},
			Ingredients: []string{
				"115 g dark chocolate",
				"115 g butter",
				"2 eggs and 2 yolks",
				"60 g sugar",
				"2 tbsp flour",
			},
			Instructions: []string{
				"Butter four ramekins and dust them with cocoa.",
				"Melt the chocolate and butter together, stirring until smooth.",
				"Whisk the eggs, yolks and sugar for 3 minutes until pale.",
				"Preheat the oven to 425°F.",
				"Gently fold the chocolate and flour into the eggs.",
				"Fill the ramekins and bake for 12 minutes.",
				"Rest for 1 minute, then turn out onto plates.",
			},
		},
		{
			ID:          "stir-fry",
			Name:        "Vegetable Stir Fry",
			Description: "Fast, crunchy vegetables in a hot wok.",
			Servings:    2,
			Tags:        []string{"asian", "vegan", "quick"},
			Ingredients: []string{
				"1 bell pepper",
				"2 cups broccoli florets",
				"1 carrot",
				"2 tbsp soy sauce",
				"2 tbsp vegetable oil",
				"1 tbsp fresh ginger",
			},
			Instructions: []string{
				"Slice the pepper, julienne the carrot and chop the broccoli.",
				"Heat the oil in a wok until it is very hot and just starting to smoke.",
				"Stir-fry the broccoli and carrot for 2 minutes, then add the pepper and fry 2 minutes more.",
				"Add the ginger and soy sauce and toss for 30 seconds.",
			},
		},
	}
}
