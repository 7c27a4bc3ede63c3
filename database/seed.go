package database

import (
	"fmt"

	"cadrebook/types"

	"gorm.io/gorm"
)

// SeedPassword is the password of every seeded account.
const SeedPassword = "password123"

type seedUser struct {
	Username           string
	DisplayName        string
	Sex                string
	Birthday           string
	RelationshipStatus string
	Bio                string
	Posts              []string
}

var seedUsers = []seedUser{
	{
		Username:           "eliana",
		DisplayName:        "Eliana Perez",
		Sex:                "female",
		Birthday:           "1995-03-14",
		RelationshipStatus: "in a relationship",
		Bio:                "Coffee addict. Building things on the internet. She/her.",
		Posts: []string{
			"Just deployed my first app to production. The feeling never gets old ☕",
			"Hot take: dark mode isn't just a preference, it's a lifestyle.",
			"Three hours debugging a timezone issue. Turns out the server was storing UTC but the client thought it was local time. Always append that Z!",
			"What's everyone reading this month? I just started 'The Pragmatic Programmer' again.",
		},
	},
	{
		Username:           "chad",
		DisplayName:        "Chad Lohrli",
		Sex:                "male",
		Birthday:           "1993-07-04",
		RelationshipStatus: "single",
		Bio:                "Gym. Code. Repeat. Probably talking about startups.",
		Posts: []string{
			"PRs don't merge themselves, people.",
			"Nothing beats a clean git log. Commit messages should be poetry.",
			"Five sets of deadlifts and then refactored the entire auth service. Productive Saturday.",
			"Reminder: premature optimization is the root of all evil. Write it clean first.",
			"Just hit 100 commits on my side project. Small wins.",
		},
	},
	{
		Username:           "dhruv",
		DisplayName:        "Dhruv Kanetkar",
		Sex:                "male",
		Birthday:           "1997-11-22",
		RelationshipStatus: "prefer not to say",
		Bio:                "ML engineer by day, chess player by night. Bengaluru to NYC.",
		Posts: []string{
			"Spent the morning fine-tuning a transformer model. Spent the afternoon losing at chess. Balance.",
			"The best code is the code you don't have to write.",
			"Denormalizing your like counts is not cheating. It's called engineering tradeoffs.",
			"If your DB query takes more than 100ms, that's a conversation starter.",
			"New city, new coffee shop, same laptop. Hello NYC!",
		},
	},
	{
		Username:           "juan",
		DisplayName:        "Juan Aguado",
		Sex:                "male",
		Birthday:           "1996-05-09",
		RelationshipStatus: "single",
		Bio:                "Building CadreBook. Full-stack dev. Always shipping.",
		Posts: []string{
			"CadreBook is live! Posts, feed, edit and delete are done. Next up: likes.",
			"Building in public is underrated. Ship fast, iterate faster.",
			"SQLite for dev, Postgres for prod. Never forget to migrate when you change the schema 😅",
			"Splitting frontend and backend work across people is genuinely useful.",
			"The hardest part of any project is keeping the scope small enough to actually finish it.",
		},
	},
}

// Seed creates the demo accounts and their posts in one transaction. Accounts whose
// username already exists are skipped along with their posts, so running it twice is
// a no-op. It returns how many users and posts were created.
func Seed(db *gorm.DB, hasher PasswordHasher) (users int, posts int, err error) {
	hashed, err := hasher.Hash(SeedPassword)
	if err != nil {
		return 0, 0, fmt.Errorf("hash seed password: %w", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for _, su := range seedUsers {
			var count int64
			if err := tx.Model(&types.User{}).Where("username = ?", su.Username).Count(&count).Error; err != nil {
				return fmt.Errorf("check seed user %s: %w", su.Username, err)
			}
			if count > 0 {
				continue
			}

			user := types.User{
				Username:           su.Username,
				Email:              su.Username + "@cadrebook.dev",
				HashedPassword:     hashed,
				DisplayName:        &su.DisplayName,
				Bio:                &su.Bio,
				Sex:                &su.Sex,
				Birthday:           &su.Birthday,
				RelationshipStatus: &su.RelationshipStatus,
			}
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("create seed user %s: %w", su.Username, err)
			}
			users++

			for _, content := range su.Posts {
				post := types.Post{UserID: user.ID, Content: content}
				if err := tx.Omit("User").Create(&post).Error; err != nil {
					return fmt.Errorf("create seed post for %s: %w", su.Username, err)
				}
				posts++
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return users, posts, nil
}
