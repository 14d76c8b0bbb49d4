package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ashokshau/iching"
)

func main() {
	payload := "https://www.google.com"
	filename := "test_code.png"

	fmt.Printf("Encoding payload: %s\n", payload)

	encoded, err := iching.Encode(payload, iching.WithECLevel(iching.ECLevelMedium))
	if err != nil {
		fmt.Printf("Error encoding: %v\n", err)
		return
	}

	file, err := os.Create(filename)
	if err != nil {
		fmt.Printf("Error creating file: %v\n", err)
		return
	}
	defer file.Close()

	if err := encoded.WritePNG(file); err != nil {
		fmt.Printf("Error writing PNG: %v\n", err)
		return
	}
	fmt.Printf("Saved code to %s\n", filename)

	decoded, err := iching.Decode(encoded.ImageData)
	if err != nil {
		fmt.Printf("Error decoding: %v\n", err)
		return
	}

	fmt.Printf("Decoded payload: %s\n", decoded.Data)
	if decoded.Data == strings.ToUpper(payload) {
		fmt.Println("SUCCESS: decoded content matches original")
	} else {
		fmt.Println("FAILURE: content mismatch")
	}
}
