package main

import "dirsweep/internal/app"

func main() {
	app.Run()
}
