package communities

import "github.com/louisbranch/cozy.galaxy/internal/services/catalog/storage"

type communityResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Interests   []string `json:"interests"`
	ImageURL    string   `json:"imageUrl"`
	Members     int      `json:"members"`
	Color       string   `json:"color"`
	Location    string   `json:"location,omitempty"`
}

type listResponse struct {
	Communities   []communityResponse `json:"communities"`
	NextPageToken string              `json:"nextPageToken"`
}

func communityJSON(c storage.Community) communityResponse {
	interests := c.Interests
	if interests == nil {
		interests = []string{}
	}
	return communityResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Interests:   interests,
		ImageURL:    c.ImageURL,
		Members:     c.Members,
		Color:       c.Color,
		Location:    c.Location,
	}
}

func communitiesJSON(list []storage.Community) []communityResponse {
	out := make([]communityResponse, 0, len(list))
	for _, c := range list {
		out = append(out, communityJSON(c))
	}
	return out
}
