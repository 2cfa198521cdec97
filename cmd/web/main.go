package main

import "github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/app"

func main() {
	app.Run()
}
