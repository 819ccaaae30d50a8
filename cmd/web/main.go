package main

import "tawzif_backend/internal/app"

func main() {
	app.Run()
}
