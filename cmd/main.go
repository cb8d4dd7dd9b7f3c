package main

import (
	"smartbite/config"
	"smartbite/routes"
	"smartbite/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	r := routes.SetupRouter()
	r.Run(":8080")
}
