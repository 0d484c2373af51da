// Command seed populates the database with the baseline records the site
// needs to operate: roles, an admin account, the academic catalog, document
// types, and the current housing semester with its buildings and rooms.
// Safe to run repeatedly.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"sykli-college-api/config"
	"sykli-college-api/models"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.InitDB()

	var (
		adminEmail    string
		adminPassword string
		skipHousing   bool
	)

	flag.StringVar(&adminEmail, "admin-email", "admin@sykli.edu", "email for the seeded admin account")
	flag.StringVar(&adminPassword, "admin-password", "", "password for the seeded admin account (default: SEED_ADMIN_PASSWORD env)")
	flag.BoolVar(&skipHousing, "skip-housing", false, "do not seed housing semester, buildings and rooms")
	flag.Parse()

	if adminPassword == "" {
		adminPassword = os.Getenv("SEED_ADMIN_PASSWORD")
	}
	if adminPassword == "" {
		log.Fatal("admin password required: pass -admin-password or set SEED_ADMIN_PASSWORD")
	}

	seedRoles()
	seedAdmin(adminEmail, adminPassword)
	seedCatalog()
	seedDocumentTypes()
	if !skipHousing {
		seedHousing()
	}

	log.Println("seed complete")
}

func seedRoles() {
	roles := []models.Role{
		{RoleID: models.RoleApplicant, Role: "applicant"},
		{RoleID: models.RoleStaff, Role: "staff"},
		{RoleID: models.RoleAdmin, Role: "admin"},
	}
	for _, role := range roles {
		if err := config.DB.Where("role_id = ?", role.RoleID).FirstOrCreate(&role).Error; err != nil {
			log.Fatalf("seed role %s: %v", role.Role, err)
		}
	}
	log.Println("seeded roles")
}

func seedAdmin(email, password string) {
	var existing models.User
	err := config.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Printf("admin %s already exists, skipping", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}

	now := time.Now()
	admin := models.User{
		FirstName: "System",
		LastName:  "Admin",
		Email:     email,
		Password:  string(hash),
		RoleID:    models.RoleAdmin,
		CreateAt:  &now,
		UpdateAt:  &now,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		log.Fatalf("create admin: %v", err)
	}
	log.Printf("seeded admin %s", email)
}

func seedCatalog() {
	type courseSpec struct {
		name     string
		slug     string
		level    string
		years    int
		tuition  float64
		capacity int
	}
	type deptSpec struct {
		name    string
		slug    string
		courses []courseSpec
	}
	type schoolSpec struct {
		name  string
		slug  string
		desc  string
		depts []deptSpec
	}

	schools := []schoolSpec{
		{
			name: "School of Technology", slug: "technology",
			desc: "Engineering, software and applied sciences.",
			depts: []deptSpec{
				{name: "Information Technology", slug: "information-technology", courses: []courseSpec{
					{"Software Engineering", "software-engineering", "BACHELOR", 4, 8500, 120},
					{"Data Engineering", "data-engineering", "MASTER", 2, 11000, 40},
				}},
				{name: "Electrical Engineering", slug: "electrical-engineering", courses: []courseSpec{
					{"Embedded Systems", "embedded-systems", "BACHELOR", 4, 9000, 60},
				}},
			},
		},
		{
			name: "School of Business", slug: "business",
			desc: "Management, economics and entrepreneurship.",
			depts: []deptSpec{
				{name: "International Business", slug: "international-business", courses: []courseSpec{
					{"Business Administration", "business-administration", "BACHELOR", 3, 7500, 150},
					{"Digital Marketing", "digital-marketing", "MASTER", 2, 10000, 35},
				}},
			},
		},
		{
			name: "School of Health Sciences", slug: "health-sciences",
			desc: "Nursing, physiotherapy and public health.",
			depts: []deptSpec{
				{name: "Nursing", slug: "nursing", courses: []courseSpec{
					{"Registered Nursing", "registered-nursing", "BACHELOR", 4, 8000, 90},
				}},
			},
		},
	}

	now := time.Now()
	for _, s := range schools {
		school := models.School{Name: s.name, Slug: s.slug, Description: s.desc, CreateAt: &now, UpdateAt: &now}
		if err := config.DB.Where("slug = ?", s.slug).FirstOrCreate(&school).Error; err != nil {
			log.Fatalf("seed school %s: %v", s.slug, err)
		}
		for _, d := range s.depts {
			dept := models.Department{SchoolID: school.SchoolID, Name: d.name, Slug: d.slug, CreateAt: &now, UpdateAt: &now}
			if err := config.DB.Where("slug = ?", d.slug).FirstOrCreate(&dept).Error; err != nil {
				log.Fatalf("seed department %s: %v", d.slug, err)
			}
			for _, cs := range d.courses {
				course := models.Course{
					DepartmentID:   dept.DepartmentID,
					Name:           cs.name,
					Slug:           cs.slug,
					Level:          cs.level,
					DurationYears:  cs.years,
					TuitionPerYear: cs.tuition,
					IntakeCapacity: cs.capacity,
					Status:         "active",
					CreateAt:       &now,
					UpdateAt:       &now,
				}
				if err := config.DB.Where("slug = ?", cs.slug).FirstOrCreate(&course).Error; err != nil {
					log.Fatalf("seed course %s: %v", cs.slug, err)
				}
			}
		}
	}
	log.Println("seeded catalog")
}

func seedDocumentTypes() {
	now := time.Now()
	types := []models.DocumentType{
		{Code: models.DocPassport, Name: "Passport or national ID", Required: true, DisplayOrder: 1},
		{Code: models.DocTranscript, Name: "Academic transcript", Required: true, DisplayOrder: 2},
		{Code: models.DocCertificate, Name: "Degree or school certificate", Required: true, DisplayOrder: 3},
		{Code: models.DocCV, Name: "Curriculum vitae", Required: true, DisplayOrder: 4},
		{Code: models.DocMotivationLetter, Name: "Motivation letter", Required: false, DisplayOrder: 5},
		{Code: models.DocLanguageCert, Name: "Language certificate", Required: false, DisplayOrder: 6},
	}
	for _, dt := range types {
		dt.CreateAt = &now
		dt.UpdateAt = &now
		if err := config.DB.Where("code = ?", dt.Code).FirstOrCreate(&dt).Error; err != nil {
			log.Fatalf("seed document type %s: %v", dt.Code, err)
		}
	}
	log.Println("seeded document types")
}

func seedHousing() {
	now := time.Now()

	year := now.Year()
	if now.Month() >= time.October {
		year++
	}
	semester := models.HousingSemester{
		Name:     fmt.Sprintf("Autumn %d", year),
		Code:     fmt.Sprintf("%d-AUTUMN", year),
		StartsOn: time.Date(year, time.August, 15, 0, 0, 0, 0, time.UTC),
		EndsOn:   time.Date(year, time.December, 20, 0, 0, 0, 0, time.UTC),
		CreateAt: &now,
		UpdateAt: &now,
	}
	if err := config.DB.Where("code = ?", semester.Code).FirstOrCreate(&semester).Error; err != nil {
		log.Fatalf("seed semester %s: %v", semester.Code, err)
	}

	buildings := []struct {
		name    string
		address string
		rooms   []models.HousingRoom
	}{
		{
			name: "Aalto House", address: "Kampuskatu 1",
			rooms: []models.HousingRoom{
				{RoomNumber: "A101", Capacity: 1, MonthlyRate: 420, Amenities: "private bathroom"},
				{RoomNumber: "A102", Capacity: 1, MonthlyRate: 420, Amenities: "private bathroom"},
				{RoomNumber: "A201", Capacity: 2, MonthlyRate: 320, Amenities: "shared kitchen"},
				{RoomNumber: "A202", Capacity: 2, MonthlyRate: 320, Amenities: "shared kitchen"},
			},
		},
		{
			name: "Sibelius Hall", address: "Kampuskatu 3",
			rooms: []models.HousingRoom{
				{RoomNumber: "B101", Capacity: 1, MonthlyRate: 460, Amenities: "private bathroom, balcony"},
				{RoomNumber: "B102", Capacity: 3, MonthlyRate: 280, Amenities: "shared kitchen, sauna access"},
			},
		},
	}

	for _, b := range buildings {
		building := models.HousingBuilding{Name: b.name, Address: b.address, CreateAt: &now, UpdateAt: &now}
		if err := config.DB.Where("name = ?", b.name).FirstOrCreate(&building).Error; err != nil {
			log.Fatalf("seed building %s: %v", b.name, err)
		}
		for _, room := range b.rooms {
			room.BuildingID = building.BuildingID
			room.Status = models.RoomAvailable
			room.CreateAt = &now
			room.UpdateAt = &now
			if err := config.DB.Where("building_id = ? AND room_number = ?", building.BuildingID, room.RoomNumber).
				FirstOrCreate(&room).Error; err != nil {
				log.Fatalf("seed room %s/%s: %v", b.name, room.RoomNumber, err)
			}
		}
	}
	log.Println("seeded housing")
}
