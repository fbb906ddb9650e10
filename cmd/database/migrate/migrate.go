package migration

import (
	"foodgram-backend/entities"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// primary keys default to uuid_generate_v4()
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";").Error; err != nil {
		log.Printf("Error creating uuid-ossp extension: %v", err)
		return err
	}

	// one call so gorm can order tables by their foreign keys
	if err := db.AutoMigrate(
		&entities.User{},
		&entities.Follow{},
		&entities.Tag{},
		&entities.Ingredient{},
		&entities.Recipe{},
		&entities.IngredientForRecipe{},
		&entities.Favourite{},
		&entities.ShoppingCart{},
	); err != nil {
		log.Printf("Error migrating database: %v", err)
		return err
	}

	log.Println("Database migration complete")
	return nil
}
