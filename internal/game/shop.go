package game

// ShopItem is one purchasable power-up.
type ShopItem struct {
	Kind PowerUpKind
	Name string
	Desc string
	Cost int
}

// Catalog returns the shop inventory in display order.
func Catalog() []ShopItem {
	return []ShopItem{
		{Kind: PowerUpHint, Name: "Hint", Desc: "Reveal a clue for the current puzzle", Cost: 10},
		{Kind: PowerUpFreeze, Name: "Time Freeze", Desc: "Stop the clock and gain bonus seconds", Cost: 15},
		{Kind: PowerUpSuperBanana, Name: "Super Banana", Desc: "Double points on your next correct answer", Cost: 25},
	}
}
