package domain

import "time"

// ContactStatus tracks triage of an inbound contact message.
type ContactStatus string

const (
	ContactNew       ContactStatus = "new"
	ContactRead      ContactStatus = "read"
	ContactResponded ContactStatus = "responded"
)

// ContactMetadata captures where a message came from.
type ContactMetadata struct {
	IPAddress string `json:"ipAddress,omitempty" bson:"ip_address,omitempty"`
	UserAgent string `json:"userAgent,omitempty" bson:"user_agent,omitempty"`
}

// ContactMessage is a submission from the public contact form. No account is
// required to send one.
type ContactMessage struct {
	ID        string          `json:"id" bson:"_id,omitempty"`
	FirstName string          `json:"firstName" bson:"first_name"`
	LastName  string          `json:"lastName" bson:"last_name"`
	Email     string          `json:"email" bson:"email"`
	Phone     string          `json:"phone,omitempty" bson:"phone,omitempty"`
	UserType  string          `json:"userType,omitempty" bson:"user_type,omitempty"`
	Subject   string          `json:"subject" bson:"subject"`
	Message   string          `json:"message" bson:"message"`
	Metadata  ContactMetadata `json:"metadata" bson:"metadata"`
	Status    ContactStatus   `json:"status" bson:"status"`
	CreatedAt time.Time       `json:"createdAt" bson:"created_at"`
}
