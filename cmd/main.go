package main

import (
	"os"

	"github.com/KristjanKelk/wellness-app-sub002/config"
	"github.com/KristjanKelk/wellness-app-sub002/routes"
	"github.com/KristjanKelk/wellness-app-sub002/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()

	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
