package client

import (
	"regexp"
	"strings"
	"time"
)

var (
	phonePattern = regexp.MustCompile(`^\+7\d{10}$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// Client は顧客エンティティ
type Client struct {
	ID           int64
	Name         string
	Contact      string
	RegisteredAt time.Time
}

// NewClient は新しい顧客を作成する
func NewClient(name, contact string) (*Client, error) {
	c := &Client{
		Name:         strings.TrimSpace(name),
		Contact:      strings.TrimSpace(contact),
		RegisteredAt: time.Now().Truncate(time.Second),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ValidateContact は連絡先が電話番号（+7 と10桁）またはメールアドレスかを検証する
func ValidateContact(contact string) error {
	if contact == "" {
		return ErrContactRequired
	}
	if !phonePattern.MatchString(contact) && !emailPattern.MatchString(contact) {
		return ErrInvalidContact
	}
	return nil
}

// UpdateContact は連絡先を検証してから変更する
func (c *Client) UpdateContact(contact string) error {
	contact = strings.TrimSpace(contact)
	if err := ValidateContact(contact); err != nil {
		return err
	}
	c.Contact = contact
	return nil
}

// Matches は名前または連絡先に query が含まれるか（大文字小文字を区別しない）
func (c *Client) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(strings.ToLower(c.Contact), q)
}

func (c *Client) Validate() error {
	if c.Name == "" {
		return ErrNameRequired
	}
	return ValidateContact(c.Contact)
}
