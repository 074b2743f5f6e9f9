// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"investkoree/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

var (
	businessCategories = []string{"SME", "Startup", "Rising Star"}
	businessSectors    = []string{
		"Agriculture", "Textiles", "Retail", "Food & Beverage",
		"Technology", "Logistics", "Healthcare", "Education",
	}
	securityOptions      = []string{"Bank Guarantee", "Land", "Machinery", "Inventory", "Other"}
	documentationOptions = []string{"Trade License", "TIN Certificate", "Audited Accounts", "Other"}
	durations            = []string{"6 months", "1 year", "2 years", "3 years", "5 years"}
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db: db,
		r:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a user with the given role.
func (f *Factory) CreateUser(role string) (*models.User, error) {
	user := &models.User{
		Name:  gofakeit.Name(),
		Email: gofakeit.Email(),
		Role:  role,
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// BuildPendingPost constructs a pending post for the given owner without
// persisting it.
func (f *Factory) BuildPendingPost(owner *models.User, overrides ...func(*models.PendingPost)) *models.PendingPost {
	post := &models.PendingPost{
		BusinessName:        gofakeit.Company(),
		Email:               owner.Email,
		Address:             gofakeit.Address().Address,
		Phone:               gofakeit.Phone(),
		BusinessCategory:    pick(f.r, businessCategories),
		BusinessSector:      pick(f.r, businessSectors),
		InvestmentDuration:  pick(f.r, durations),
		SecurityOption:      pick(f.r, securityOptions),
		DocumentationOption: pick(f.r, documentationOptions),
		Assets:              fmt.Sprintf("%d BDT", gofakeit.Number(100_000, 10_000_000)),
		Revenue:             fmt.Sprintf("%d BDT/year", gofakeit.Number(50_000, 5_000_000)),
		FundingAmount:       fmt.Sprintf("%d BDT", gofakeit.Number(50_000, 2_000_000)),
		FundingHelp:         gofakeit.Sentence(12),
		ReturnPlan:          gofakeit.Sentence(10),
		BusinessSafety:      gofakeit.Sentence(8),
		ProjectedROI:        fmt.Sprintf("%d%%", gofakeit.Number(5, 30)),
		MinInvestment:       fmt.Sprintf("%d BDT", gofakeit.Number(1_000, 100_000)),
		BusinessPictures: models.StringList{
			fmt.Sprintf("/upload/%s.jpg", gofakeit.UUID()),
		},
		UserID: owner.ID,
	}

	// realistic created_at spread over the last 90 days
	daysBack := f.r.Intn(90)
	hoursBack := f.r.Intn(24)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePendingPost persists a fresh pending post for the owner.
func (f *Factory) CreatePendingPost(owner *models.User, overrides ...func(*models.PendingPost)) (*models.PendingPost, error) {
	post := f.BuildPendingPost(owner, overrides...)
	if err := f.db.Create(post).Error; err != nil {
		return nil, fmt.Errorf("create pending post: %w", err)
	}
	return post, nil
}

// CreateFounderPost persists an already-published post for the owner.
func (f *Factory) CreateFounderPost(owner *models.User, overrides ...func(*models.FounderPost)) (*models.FounderPost, error) {
	pending := f.BuildPendingPost(owner)
	post := models.PromoteFromPending(pending, owner.ID)
	post.PendingPostID = 0 // standalone, not a repaired promotion
	for _, override := range overrides {
		override(post)
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, fmt.Errorf("create founder post: %w", err)
	}
	return post, nil
}

// CreateNotification persists a notification for the user.
func (f *Factory) CreateNotification(userID uint, message string, read bool) (*models.Notification, error) {
	n := &models.Notification{
		UserID:  userID,
		Message: message,
		Read:    read,
	}
	if err := f.db.Create(n).Error; err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	return n, nil
}

// Demo populates the database with a believable development data set:
// founders with published and queued posts, investors, one admin.
func (f *Factory) Demo(numFounders, postsPerFounder int) error {
	if _, err := f.CreateUser(models.RoleAdmin); err != nil {
		return err
	}

	for i := 0; i < numFounders; i++ {
		founder, err := f.CreateUser(models.RoleFounder)
		if err != nil {
			return err
		}
		for j := 0; j < postsPerFounder; j++ {
			if j%2 == 0 {
				_, err = f.CreateFounderPost(founder)
			} else {
				_, err = f.CreatePendingPost(founder)
			}
			if err != nil {
				return err
			}
		}
		if _, err := f.CreateNotification(founder.ID,
			fmt.Sprintf("Your post for %q has been accepted!", gofakeit.Company()), f.r.Intn(2) == 0); err != nil {
			return err
		}
	}

	for i := 0; i < numFounders; i++ {
		if _, err := f.CreateUser(models.RoleInvestor); err != nil {
			return err
		}
	}

	log.Printf("Seeded %d founders with %d posts each", numFounders, postsPerFounder)
	return nil
}

// ClearAll wipes every seeded table. Development convenience only.
func (f *Factory) ClearAll() error {
	for _, model := range []interface{}{
		&models.Notification{},
		&models.PendingPost{},
		&models.FounderPost{},
		&models.User{},
	} {
		if err := f.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clear table: %w", err)
		}
	}
	return nil
}

func pick(r *rand.Rand, options []string) string {
	return options[r.Intn(len(options))]
}
