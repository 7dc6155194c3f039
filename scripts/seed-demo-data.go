package main

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"time"
)

const apiBase = "http://localhost:8080/api/v1"

type Account struct {
	Name     string
	Email    string
	Password string
	Cookie   *http.Cookie
}

type Course struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

type Order struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	return nil
}

func postJSON(path string, cookie *http.Cookie, payload interface{}, out interface{}) error {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", apiBase+path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s failed (%d): %s", path, resp.StatusCode, string(bodyBytes))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode failed: %w", err)
		}
	}
	return nil
}

func signup(name, email, password, role string) (*Account, error) {
	payload := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}
	if role != "" {
		payload["role"] = role
	}

	body, _ := json.Marshal(payload)
	resp, err := http.Post(apiBase+"/users/signup", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("signup failed (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	cookie := sessionCookie(resp)
	if cookie == nil {
		return nil, fmt.Errorf("signup response has no session cookie")
	}

	return &Account{Name: name, Email: email, Password: password, Cookie: cookie}, nil
}

func createCourse(instructor *Account, title, category string, price float64) (*Course, error) {
	var course Course
	err := postJSON("/courses", instructor.Cookie, map[string]interface{}{
		"title":       title,
		"description": "Seeded demo course: " + title,
		"category":    category,
		"price":       price,
	}, &course)
	if err != nil {
		return nil, err
	}

	for i := 1; i <= 3; i++ {
		if err := postJSON("/courses/"+course.ID+"/lectures", instructor.Cookie, map[string]interface{}{
			"title":     fmt.Sprintf("Lecture %d", i),
			"videoUrl":  fmt.Sprintf("https://videos.local/%s/%d.mp4", course.ID, i),
			"position":  i,
			"isPreview": i == 1,
		}, nil); err != nil {
			return nil, err
		}
	}

	if err := postJSON("/courses/"+course.ID+"/publish", instructor.Cookie, map[string]string{}, nil); err != nil {
		return nil, err
	}

	return &course, nil
}

// signCallback reproduces the checkout callback signature so seeded purchases
// can be completed against a dev gateway sharing RAZORPAY_KEY_SECRET.
func signCallback(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func buyCourse(student *Account, courseID, secret string) error {
	var order Order
	if err := postJSON("/purchases/orders", student.Cookie, map[string]string{"courseId": courseID}, &order); err != nil {
		return err
	}

	paymentID := fmt.Sprintf("pay_seed_%d", rand.Intn(1_000_000))
	return postJSON("/purchases/verify", student.Cookie, map[string]string{
		"razorpay_order_id":   order.OrderID,
		"razorpay_payment_id": paymentID,
		"razorpay_signature":  signCallback(secret, order.OrderID, paymentID),
	}, nil)
}

func generateEmail(prefix string) string {
	return fmt.Sprintf("%s_%d_%04d@example.com", prefix, time.Now().Unix(), rand.Intn(10000))
}

func main() {
	secret := os.Getenv("RAZORPAY_KEY_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "RAZORPAY_KEY_SECRET must be set (same value the server uses)")
		os.Exit(1)
	}

	fmt.Println("Seeding demo data...")

	instructor, err := signup("Demo Instructor", generateEmail("instructor"), "demopassword123", "instructor")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create instructor: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("  ✓ Instructor: %s\n", instructor.Email)

	catalog := []struct {
		title    string
		category string
		price    float64
	}{
		{"Go for Backend Engineers", "programming", 499.00},
		{"PostgreSQL Performance Tuning", "databases", 799.00},
		{"Designing Payment Systems", "architecture", 1299.00},
	}

	var courses []*Course
	for _, c := range catalog {
		course, err := createCourse(instructor, c.title, c.category, c.price)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create course %q: %v\n", c.title, err)
			os.Exit(1)
		}
		courses = append(courses, course)
		fmt.Printf("  ✓ Course published: %s\n", c.title)
	}

	fmt.Println("\nRegistering students and completing purchases...")
	for i := 1; i <= 5; i++ {
		student, err := signup(fmt.Sprintf("Demo Student %d", i), generateEmail("student"), "demopassword123", "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create student %d: %v\n", i, err)
			os.Exit(1)
		}

		course := courses[rand.Intn(len(courses))]
		if err := buyCourse(student, course.ID, secret); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to buy course for student %d: %v\n", i, err)
			os.Exit(1)
		}

		if err := postJSON("/courses/"+course.ID+"/ratings", student.Cookie, map[string]interface{}{
			"stars":   3 + rand.Intn(3),
			"comment": "Seeded review",
		}, nil); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to rate course for student %d: %v\n", i, err)
			os.Exit(1)
		}

		fmt.Printf("  ✓ Student %d bought and rated %q\n", i, course.Title)
	}

	fmt.Println("\n============================================================")
	fmt.Println("DEMO DATA SEEDED")
	fmt.Println("============================================================")
	fmt.Printf("\nInstructor login: %s / demopassword123\n", instructor.Email)
	fmt.Printf("Catalog: %s/courses\n", apiBase)
}
