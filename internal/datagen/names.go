package datagen

var firstNames = []string{
	"Alexey", "Ivan", "Maria", "Elena", "Dmitry", "Olga", "Sergey", "Anna",
	"Pavel", "Natalia", "Mikhail", "Irina", "Andrey", "Tatiana", "Nikolai", "Svetlana",
}

var lastNames = []string{
	"Petrov", "Smirnov", "Ivanova", "Sokolova", "Kuznetsov", "Popova", "Volkov", "Orlova",
	"Lebedev", "Morozova", "Novikov", "Fedorova", "Kozlov", "Egorova",
}

var positions = []string{
	"Junior Seller", "Seller", "Senior Seller", "Team Lead",
}

var categories = []string{
	"Electronics", "Home", "Garden", "Toys", "Books", "Sports", "Grocery", "Beauty",
}

var productNames = []string{
	"Desk Lamp", "Headphones", "Coffee Grinder", "Yoga Mat", "Garden Hose", "Board Game",
	"Notebook", "Water Bottle", "Backpack", "Phone Case", "Teapot", "Blender",
	"Frying Pan", "Puzzle", "Face Cream", "Running Shoes",
}
