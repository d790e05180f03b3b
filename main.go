package main

import (
	"ParkSys/FiberConfig"
	"ParkSys/Models"
)

func main() {
	Models.Connect()
	FiberConfig.FiberConfig()
}
