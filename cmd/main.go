package main

import (
	"github.com/adtm0/smartbite/config"
	"github.com/adtm0/smartbite/routes"
)

func main() {
	config.Load()
	config.InitDB()
	r := routes.SetupRouter()
	r.Run(":8080")
}
