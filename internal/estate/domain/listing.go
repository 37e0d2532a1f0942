package domain

import "time"

type ListingStatus string

const (
	StatusActive   ListingStatus = "active"
	StatusPending  ListingStatus = "pending"
	StatusSold     ListingStatus = "sold"
	StatusInactive ListingStatus = "inactive"
)

type Category string

const (
	CategoryHouse      Category = "house"
	CategoryApartment  Category = "apartment"
	CategoryLand       Category = "land"
	CategoryCommercial Category = "commercial"
)

// Listing is a property record as the server returns it, after image
// references have been normalized to absolute URLs.
type Listing struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Category    Category
	Price       float64
	Address     string
	City        string
	Region      string
	Bedrooms    int
	Bathrooms   int
	AreaSqFt    float64
	SizeAcres   float64
	Status      ListingStatus
	Media       []MediaAsset
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PrimaryImageURL returns the URL of the primary media asset, or the first
// asset when none is flagged, or "" for a listing without media.
func (l *Listing) PrimaryImageURL() string {
	for _, m := range l.Media {
		if m.Primary {
			return m.URL
		}
	}
	if len(l.Media) > 0 {
		return l.Media[0].URL
	}
	return ""
}

// MediaAttachment is a pending, client-side-only file queued for upload.
// It becomes a MediaAsset once the server accepts it.
type MediaAttachment struct {
	ID       string // client-side id, never sent to the server
	FileName string
	Data     []byte
	Caption  string
	Primary  bool
	Position int
}

// MediaAsset is a persisted media record owned by a listing.
type MediaAsset struct {
	ID        string
	ListingID string
	URL       string
	Caption   string
	Primary   bool
}

// ListingDraft is a record under construction by the creation wizard.
type ListingDraft struct {
	Title       string
	Description string
	Category    Category
	Price       float64
	Address     string
	City        string
	Region      string

	// Structure attributes, used unless Category is land.
	Bedrooms  int
	Bathrooms int
	AreaSqFt  float64

	// Land attributes.
	SizeAcres float64

	Attachments []MediaAttachment
}

// AddAttachment appends a pending attachment and keeps the exactly-one-primary
// invariant: the first attachment becomes primary, and marking a later one
// primary demotes the rest.
func (d *ListingDraft) AddAttachment(att MediaAttachment) {
	att.Position = len(d.Attachments)
	if len(d.Attachments) == 0 {
		att.Primary = true
	} else if att.Primary {
		for i := range d.Attachments {
			d.Attachments[i].Primary = false
		}
	}
	d.Attachments = append(d.Attachments, att)
}

// SetPrimary marks the attachment at position idx primary and demotes the rest.
func (d *ListingDraft) SetPrimary(idx int) {
	if idx < 0 || idx >= len(d.Attachments) {
		return
	}
	for i := range d.Attachments {
		d.Attachments[i].Primary = i == idx
	}
}

// EnsurePrimary restores the invariant after removals: if any attachments
// exist and none is primary, the first one becomes primary.
func (d *ListingDraft) EnsurePrimary() {
	if len(d.Attachments) == 0 {
		return
	}
	for _, att := range d.Attachments {
		if att.Primary {
			return
		}
	}
	d.Attachments[0].Primary = true
}

// SearchFilter narrows a listing search. Zero values mean "no constraint".
type SearchFilter struct {
	Query    string
	Category Category
	City     string
	Region   string
	MinPrice float64
	MaxPrice float64
	Status   ListingStatus
	Page     int
	Limit    int
}
