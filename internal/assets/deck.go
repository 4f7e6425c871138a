package assets

import (
	"fmt"
	"io"
	"time"

	"github.com/at-ishikawa/lunaword/internal/library"
)

// DeckTemplate is the data a deck template is executed with.
type DeckTemplate struct {
	Title      string
	Date       time.Time
	Categories []DeckCategory
}

// DeckCategory is one section of a deck.
type DeckCategory struct {
	Name  string
	Cards []library.WordCard
}

// NewDeckTemplate groups cards into sections in the order the categories first appear.
func NewDeckTemplate(title string, date time.Time, cards []library.WordCard) DeckTemplate {
	deck := DeckTemplate{Title: title, Date: date}
	index := make(map[string]int)
	for _, card := range cards {
		i, ok := index[card.Category]
		if !ok {
			i = len(deck.Categories)
			index[card.Category] = i
			deck.Categories = append(deck.Categories, DeckCategory{Name: card.Category})
		}
		deck.Categories[i].Cards = append(deck.Categories[i].Cards, card)
	}
	return deck
}

func WriteDeck(output io.Writer, templatePath string, templateData DeckTemplate) error {
	tmpl, err := ParseDeckTemplate(templatePath)
	if err != nil {
		return fmt.Errorf("ParseDeckTemplate() > %w", err)
	}
	if err := tmpl.Execute(output, templateData); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
