// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Route status constants
const (
	StatusActive   = "Active"
	StatusUpcoming = "Upcoming"
)

// Persisted storage keys
const (
	KeyUser       = "user"
	KeyToken      = "token"
	KeyFavourites = "favourites"
	KeyDarkMode   = "darkMode"
)

// Domain types

type Route struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Status         string `json:"status"`
	Image          string `json:"image"`
	Schedule       string `json:"schedule,omitempty"`
	Frequency      string `json:"frequency,omitempty"`
	OperatingHours string `json:"operatingHours,omitempty"`
}

type UserProfile struct {
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// Remote API wire types

// Product is one item of the GET /products list.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Thumbnail   string  `json:"thumbnail"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

type ProductList struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

type LoginCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Gender       string `json:"gender"`
	Image        string `json:"image"`
	Token        string `json:"token,omitempty"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken"`
}

// SessionToken returns the issued token. Older API versions call it "token",
// newer ones "accessToken".
func (a AuthResponse) SessionToken() string {
	if a.AccessToken != "" {
		return a.AccessToken
	}
	return a.Token
}

// Profile extracts the fields kept in the session store.
func (a AuthResponse) Profile() UserProfile {
	return UserProfile{
		Username:  a.Username,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
	}
}

// State types

type AuthState struct {
	IsAuthenticated bool         `json:"isAuthenticated"`
	User            *UserProfile `json:"user"`
	Loading         bool         `json:"loading"`
	Error           string       `json:"error,omitempty"`
}

type ItemsState struct {
	Routes     []Route `json:"routes"`
	Loading    bool    `json:"loading"`
	Favourites []int   `json:"favourites"`
	Error      string  `json:"error,omitempty"`
}

type ThemeState struct {
	IsDarkMode bool `json:"isDarkMode"`
}

type State struct {
	Auth  AuthState  `json:"auth"`
	Items ItemsState `json:"items"`
	Theme ThemeState `json:"theme"`
}

// HTTP request/response types

type ThemeRequest struct {
	DarkMode *bool `json:"dark_mode"`
}

type ThemeResponse struct {
	DarkMode bool `json:"dark_mode"`
}

type RouteDetail struct {
	Route
	IsFavourite bool `json:"is_favourite"`
}

type RoutesResponse struct {
	Routes  []RouteDetail `json:"routes"`
	Loading bool          `json:"loading"`
	Error   string        `json:"error,omitempty"`
}

type FavouritesResponse struct {
	IDs    []int   `json:"ids"`
	Routes []Route `json:"routes"`
	Count  int     `json:"count"`
}

type ToggleFavouriteResponse struct {
	ID         int   `json:"id"`
	Favourite  bool  `json:"favourite"`
	Favourites []int `json:"favourites"`
}

type SessionResponse struct {
	IsAuthenticated bool         `json:"is_authenticated"`
	User            *UserProfile `json:"user,omitempty"`
	Error           string       `json:"error,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}
