package main

import (
	_ "stockorder.GO/custom"

	"stockorder.GO/cmd"
	"stockorder.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
