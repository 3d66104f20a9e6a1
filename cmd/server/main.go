package main

import "furnimart/internal/app"

// @title           Furnimart API
// @version         1.0
// @description     Account, email verification and payment endpoints for the Furnimart storefront.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
