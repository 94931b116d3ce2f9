// @title           Collab API
// @version         1.0
// @description     Маркетплейс коллабораций брендов и инфлюенсеров.
// @BasePath        /api
// @securityDefinitions.apikey SessionCookie
// @in              header
// @name            token

package main

import "collab_backend/internal/app"

func main() {
	app.Run()
}
