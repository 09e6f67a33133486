package models

import "time"

// User doubles as the author record: after the author/user consolidation every
// research author is a row in this table, linked through ResearchAuthor.
type User struct {
	Id         int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Username   string    `json:"username" gorm:"column:username;type:varchar(150);not null;uniqueIndex"`
	Email      string    `json:"email" gorm:"column:email;type:varchar(254);index"`
	Password   string    `json:"-" gorm:"column:password;type:varchar(128);not null"`
	FirstName  string    `json:"firstName" gorm:"column:first_name;type:varchar(150)"`
	LastName   string    `json:"lastName" gorm:"column:last_name;type:varchar(150)"`
	IsStaff    bool      `json:"isStaff" gorm:"column:is_staff;default:false;not null"`
	// No default tag: gorm would drop an explicit false on insert and the
	// column default would win. Creation sites set the flag themselves.
	IsActive   bool      `json:"isActive" gorm:"column:is_active;not null"`
	DateJoined time.Time `json:"dateJoined" gorm:"column:date_joined;autoCreateTime"`
}

func (User) TableName() string { return "users" }

type Profile struct {
	Id            int        `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID        int        `json:"userId" gorm:"column:user_id;not null;uniqueIndex"`
	User          User       `json:"user,omitempty" gorm:"foreignKey:UserID;references:Id"`
	Name          string     `json:"name" gorm:"column:name;type:varchar(100)"`
	Surname       string     `json:"surname" gorm:"column:surname;type:varchar(100)"`
	Affiliation   string     `json:"affiliation" gorm:"column:affiliation;type:varchar(200)"`
	Orcid         string     `json:"orcid" gorm:"column:orcid;type:varchar(19)"`
	ContactEmail  string     `json:"contactEmail" gorm:"column:contact_email;type:varchar(254)"`
	Qualification string     `json:"qualification" gorm:"column:qualification;type:varchar(100)"`
	BirthDate     *time.Time `json:"birthDate" gorm:"column:birth_date"`
	Image         string     `json:"image" gorm:"column:image;type:varchar(255);default:default.jpg"`
}

func (Profile) TableName() string { return "profile" }

// FullName falls back to the linked User names when the profile fields are empty.
func (p *Profile) FullName() string {
	switch {
	case p.Name != "" && p.Surname != "":
		return p.Name + " " + p.Surname
	case p.Name != "":
		return p.Name
	case p.Surname != "":
		return p.Surname
	}
	full := p.User.FirstName
	if p.User.LastName != "" {
		if full != "" {
			full += " "
		}
		full += p.User.LastName
	}
	if full == "" {
		full = p.User.Username
	}
	return full
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Affiliation string `json:"affiliation"`
	Orcid       string `json:"orcid"`
}

type RegisterResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}
