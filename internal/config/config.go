package config // package config loads application configuration from environment variables

import (
    "os"       // os provides access to environment variables
    "strconv"  // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Every value has a default so the service
// can boot with no environment at all: that matters because the whole
// point of the storage fallback is to come up even when nothing else is
// available.
type Config struct {
    Env           string // application environment (e.g. "dev", "prod")
    Port          string // HTTP port to listen on
    MongoURI      string // connection string for the document store
    MongoDB       string // database name inside the document store
    JWTSecret     string // secret used to sign session tokens
    TokenTTLHours int    // session token time-to-live in hours
    BcryptCost    int    // bcrypt cost for password hashing
    UploadDir     string // directory where uploaded images are written
    AdminUsername string // bootstrap admin account (memory mode seed)
    AdminPassword string // bootstrap admin password
    AdminEmail    string // bootstrap admin contact email
}

// Load reads configuration values from environment variables and
// returns a Config.  Unset variables fall back to development defaults.
func Load() Config {
    return Config{
        Env:           getenv("APP_ENV", "dev"),                      // environment (dev/test/prod)
        Port:          getenv("APP_PORT", "5000"),                    // port to bind the HTTP server
        MongoURI:      getenv("MONGO_URI", "mongodb://localhost:27017"), // document store address
        MongoDB:       getenv("MONGO_DB", "trek-booking"),            // database name
        JWTSecret:     getenv("JWT_SECRET", "dev-only-secret"),       // signing secret for session tokens
        TokenTTLHours: getint("TOKEN_TTL_HOURS", 24),                 // sessions expire after a fixed 24h window
        BcryptCost:    getint("BCRYPT_COST", 10),                     // bcrypt cost factor
        UploadDir:     getenv("UPLOAD_DIR", "uploads"),               // image upload destination
        AdminUsername: getenv("ADMIN_USERNAME", "sam.marotkar"),      // seeded admin for memory mode
        AdminPassword: getenv("ADMIN_PASSWORD", "changeme"),          // seeded admin password
        AdminEmail:    getenv("ADMIN_EMAIL", "admin@trekbooking.local"),
    }
}

// getenv retrieves an environment variable, falling back to def when
// the variable is unset or empty.
func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

// getint is like getenv but converts the value to an integer; a value
// that fails to parse falls back to def.
func getint(key string, def int) int {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    n, err := strconv.Atoi(v)
    if err != nil {
        return def
    }
    return n
}
