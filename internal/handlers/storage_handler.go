package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"storage-control-api/internal/backend"
	"storage-control-api/internal/database"
	"storage-control-api/internal/realtime"
	"storage-control-api/internal/storage"

	"github.com/gin-gonic/gin"
)

// store resolves the backend for every request; by default it follows the global database handle.
var store = storage.Deferred(func() storage.Backend {
	return backend.NewSQL(database.GetDB())
})

// UseBackend replaces the backend used by the storage endpoints
func UseBackend(instance storage.Instance) {
	store = instance
}

// SetItemRequest represents the request payload for writing a unit.
// Timeout is an absolute expiry in epoch milliseconds; TTL is relative, in milliseconds.
type SetItemRequest struct {
	Value   json.RawMessage `json:"value"`
	Timeout *int64          `json:"timeout"`
	TTL     *int64          `json:"ttl"`
}

// ItemResponse is returned for a readable value
type ItemResponse struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
}

// RecordResponse exposes the stored record, expired or not
type RecordResponse struct {
	Namespace string       `json:"namespace"`
	Key       string       `json:"key"`
	Record    storage.Atom `json:"record"`
	Expired   bool         `json:"expired"`
}

// unitFor scopes a namespace to the authenticated user so users never share keys
func unitFor(c *gin.Context) (*storage.Unit, string, string, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in token",
		})
		return nil, "", "", false
	}

	namespace := c.Param("namespace")
	key := c.Param("key")
	if namespace == "" || key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Namespace and key are required"})
		return nil, "", "", false
	}

	base := storage.BaseConfig{
		Path:     "users/" + userID + "/" + namespace,
		Instance: store,
	}
	return base.Unit(key), namespace, key, true
}

// GetItem handles GET /api/storage/:namespace/:key
// Missing, corrupt and expired values all answer 404
func GetItem(c *gin.Context) {
	unit, namespace, key, ok := unitFor(c)
	if !ok {
		return
	}

	value, found, err := unit.Get()
	if err != nil {
		log.Printf("storage get %s failed: %v", unit.Key(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read value"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Value not found"})
		return
	}

	c.JSON(http.StatusOK, ItemResponse{
		Namespace: namespace,
		Key:       key,
		Value:     value,
	})
}

// GetItemRecord handles GET /api/storage/:namespace/:key/record
func GetItemRecord(c *gin.Context) {
	unit, namespace, key, ok := unitFor(c)
	if !ok {
		return
	}

	atom, found, err := unit.Atom()
	if err != nil {
		log.Printf("storage record %s failed: %v", unit.Key(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read record"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}

	c.JSON(http.StatusOK, RecordResponse{
		Namespace: namespace,
		Key:       key,
		Record:    atom,
		Expired:   atom.ExpiredNow(),
	})
}

// SetItem handles PUT /api/storage/:namespace/:key
func SetItem(c *gin.Context) {
	unit, namespace, key, ok := unitFor(c)
	if !ok {
		return
	}

	var req SetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Value) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value is required"})
		return
	}
	value, err := decodeValue(req.Value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value is not valid JSON"})
		return
	}

	timeout, err := resolveTimeout(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := unit.Set(value, timeout); err != nil {
		if errors.Is(err, storage.ErrNegativeTimeout) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("storage set %s failed: %v", unit.Key(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store value"})
		return
	}

	atom, _, err := unit.Atom()
	if err != nil {
		log.Printf("storage record %s failed: %v", unit.Key(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read record"})
		return
	}

	realtime.GetHub().Publish(realtime.Event{
		Type:      realtime.EventItemSet,
		Namespace: namespace,
		Key:       key,
		UserID:    c.GetString("user_id"),
		Timeout:   atom.Timeout,
	})

	c.JSON(http.StatusOK, RecordResponse{
		Namespace: namespace,
		Key:       key,
		Record:    atom,
		Expired:   atom.ExpiredNow(),
	})
}

// DeleteItem handles DELETE /api/storage/:namespace/:key
// Deleting a missing key still answers 204
func DeleteItem(c *gin.Context) {
	unit, namespace, key, ok := unitFor(c)
	if !ok {
		return
	}

	if err := unit.Remove(); err != nil {
		log.Printf("storage remove %s failed: %v", unit.Key(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove value"})
		return
	}

	realtime.GetHub().Publish(realtime.Event{
		Type:      realtime.EventItemRemoved,
		Namespace: namespace,
		Key:       key,
		UserID:    c.GetString("user_id"),
	})

	c.Status(http.StatusNoContent)
}

func decodeValue(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func resolveTimeout(req SetItemRequest) (int64, error) {
	switch {
	case req.Timeout != nil && req.TTL != nil:
		return 0, errors.New("timeout and ttl are mutually exclusive")
	case req.TTL != nil:
		if *req.TTL < 0 {
			return 0, errors.New("ttl must not be negative")
		}
		return storage.ExpireInMillis(*req.TTL), nil
	case req.Timeout != nil:
		return *req.Timeout, nil
	default:
		return storage.TimeoutForever, nil
	}
}
