package routes

import (
	"foodgram-backend/internal/api/handlers"
	"foodgram-backend/internal/middleware"
	"foodgram-backend/pkg/jwt"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	RecipeHandler     handlers.RecipeHandler
	IngredientHandler handlers.IngredientHandler
	TagHandler        handlers.TagHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Auth()
	c.User()
	c.Tags()
	c.Ingredients()
	c.Recipes()
	c.GuestRoute()
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/auth")
	auth.Post("/token/login", c.UserHandler.Login)
}

func (c *Config) User() {
	authRequired := c.Middleware.AuthMiddleware(c.JWTService)
	optionalAuth := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	user := c.App.Group("/api/users")
	// static paths first so they are not captured by /:id
	{
		user.Post("", c.UserHandler.Register)
		user.Get("", optionalAuth, c.UserHandler.ListUsers)
		user.Get("/me", authRequired, c.UserHandler.Me)
		user.Post("/set_password", authRequired, c.UserHandler.SetPassword)
		user.Get("/subscriptions", authRequired, c.UserHandler.GetSubscriptions)
		user.Get("/favorites", authRequired, c.RecipeHandler.GetFavorites)
		user.Get("/shopping_list", authRequired, c.RecipeHandler.GetShoppingCart)
		user.Get("/:id", optionalAuth, c.UserHandler.GetUser)
		user.Post("/:id/subscribe", authRequired, c.UserHandler.Subscribe)
		user.Delete("/:id/subscribe", authRequired, c.UserHandler.Unsubscribe)
	}
}

func (c *Config) Tags() {
	tags := c.App.Group("/api/tags")
	tags.Get("", c.TagHandler.GetTags)
	tags.Get("/:id", c.TagHandler.GetTag)
	tags.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.Middleware.AdminOnly(), c.TagHandler.CreateTag)
}

func (c *Config) Ingredients() {
	ingredients := c.App.Group("/api/ingredients")
	ingredients.Get("", c.IngredientHandler.GetIngredients)
	ingredients.Get("/:id", c.IngredientHandler.GetIngredient)
	ingredients.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.Middleware.AdminOnly(), c.IngredientHandler.CreateIngredient)
}

func (c *Config) Recipes() {
	authRequired := c.Middleware.AuthMiddleware(c.JWTService)
	optionalAuth := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	recipes := c.App.Group("/api/recipes")
	recipes.Get("", optionalAuth, c.RecipeHandler.GetRecipes)
	recipes.Post("", authRequired, c.RecipeHandler.CreateRecipe)

	// shopping list
	recipes.Get("/download_shopping_cart", authRequired, c.RecipeHandler.DownloadShoppingCart)
	recipes.Post("/send_shopping_cart", authRequired, c.RecipeHandler.SendShoppingCart)

	recipes.Get("/:id", optionalAuth, c.RecipeHandler.GetRecipeDetail)
	recipes.Patch("/:id", authRequired, c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", authRequired, c.RecipeHandler.DeleteRecipe)

	recipes.Post("/:id/favorite", authRequired, c.RecipeHandler.AddFavorite)
	recipes.Delete("/:id/favorite", authRequired, c.RecipeHandler.RemoveFavorite)
	recipes.Post("/:id/shopping_cart", authRequired, c.RecipeHandler.AddToShoppingCart)
	recipes.Delete("/:id/shopping_cart", authRequired, c.RecipeHandler.RemoveFromShoppingCart)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
