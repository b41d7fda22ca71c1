// uploadmockctl is a small client for the mock upload server, used in
// documentation and manual testing.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

const defaultServerURL = "http://127.0.0.1:8000"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	serverURL := os.Getenv("UPLOADMOCK_URL")
	if serverURL == "" {
		serverURL = defaultServerURL
	}

	switch os.Args[1] {
	case "register":
		if len(os.Args) < 4 {
			log.Fatal("usage: uploadmockctl register <username> <password>")
		}
		registerUser(serverURL, os.Args[2], os.Args[3])

	case "upload":
		if len(os.Args) < 4 {
			log.Fatal("usage: uploadmockctl upload <username> <file.csv>")
		}
		uploadFile(serverURL, os.Args[2], os.Args[3])

	case "users":
		listUsers(serverURL)

	case "data":
		if len(os.Args) < 3 {
			log.Fatal("usage: uploadmockctl data <username>")
		}
		showUserData(serverURL, os.Args[2])

	default:
		printUsage()
		os.Exit(1)
	}
}

func registerUser(serverURL, username, password string) {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		log.Fatal(err)
	}

	resp, err := http.Post(serverURL+"/register/", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("request failed: %v", err)
	}
	printServerMessage(resp, "message")
}

func uploadFile(serverURL, username, path string) {
	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("failed to open %s: %v", path, err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		log.Fatal(err)
	}
	if _, err := io.Copy(part, file); err != nil {
		log.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		log.Fatal(err)
	}

	resp, err := http.Post(serverURL+"/upload/"+username, writer.FormDataContentType(), &buf)
	if err != nil {
		log.Fatalf("request failed: %v", err)
	}
	printServerMessage(resp, "message")
}

func listUsers(serverURL string) {
	resp, err := http.Get(serverURL + "/users/")
	if err != nil {
		log.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Users []string `json:"users"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Fatalf("failed to decode response: %v", err)
	}
	for _, user := range payload.Users {
		fmt.Printf("- %s\n", user)
	}
}

func showUserData(serverURL, username string) {
	resp, err := http.Get(serverURL + "/data/" + username)
	if err != nil {
		log.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		printDecodedField(resp.Body, "detail")
		os.Exit(1)
	}

	var records []map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		log.Fatalf("failed to decode response: %v", err)
	}
	for _, record := range records {
		fmt.Println(record)
	}
}

func printServerMessage(resp *http.Response, okField string) {
	defer resp.Body.Close()
	field := okField
	if resp.StatusCode != http.StatusOK {
		field = "detail"
	}
	printDecodedField(resp.Body, field)
}

func printDecodedField(body io.Reader, field string) {
	var payload map[string]interface{}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		log.Fatalf("failed to decode response: %v", err)
	}
	fmt.Println(payload[field])
}

func printUsage() {
	fmt.Println("Usage: uploadmockctl [command]")
	fmt.Println("Available commands:")
	fmt.Println("  register <username> <password> - Register a user")
	fmt.Println("  upload <username> <file.csv>   - Upload a CSV file for a user")
	fmt.Println("  users                          - List registered users")
	fmt.Println("  data <username>                - Show a user's uploaded records")
}
