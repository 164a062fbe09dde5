package registry

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sasha-s/go-deadlock"
	bolt "go.etcd.io/bbolt"

	"github.com/omniworld-xyz/builder/internal/logger"
)

var log = logger.L()

var assetsBucket = []byte("assets")

// Asset categories. Unknown categories normalize to CategoryModel.
const (
	CategoryModel     = "model"
	CategoryTexture   = "texture"
	CategoryMaterial  = "material"
	CategoryAudio     = "audio"
	CategoryPrefab    = "prefab"
	CategoryAnimation = "animation"
)

var categories = map[string]struct{}{
	CategoryModel: {}, CategoryTexture: {}, CategoryMaterial: {},
	CategoryAudio: {}, CategoryPrefab: {}, CategoryAnimation: {},
}

// Asset : a reusable resource referenced by entities via asset_reference.
type Asset struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Category  string            `json:"category"`
	Path      string            `json:"path"`
	Tags      []string          `json:"tags,omitempty"`
	Platforms []string          `json:"platforms,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Registry : persistent asset catalog backed by a bolt database, with an
// in-memory index rebuilt from disk at open time.
type Registry struct {
	mu     deadlock.RWMutex
	db     *bolt.DB
	assets map[string]*Asset
}

func Open(path string) (*Registry, error) {
	db, err := bolt.Open(path, os.FileMode(0644), nil)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to open asset db %q", path)
	}

	r := &Registry{
		db:     db,
		assets: make(map[string]*Asset),
	}
	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(assetsBucket)
		if err != nil {
			return err
		}
		return b.ForEach(func(k, v []byte) error {
			var a Asset
			if err := json.Unmarshal(v, &a); err != nil {
				log.Warnf("Registry: skipping corrupt asset record %q: %v", k, err)
				return nil
			}
			r.assets[a.ID] = &a
			return nil
		})
	})
	if err != nil {
		db.Close()
		return nil, errors.WithMessage(err, "failed to load asset index")
	}
	log.Debugf("Registry: opened %q with %d assets", path, len(r.assets))
	return r, nil
}

func (r *Registry) Close() error {
	return r.db.Close()
}

// Register stores the asset and updates the index. An empty id gets a fresh
// uuid, an unknown category normalizes to CategoryModel.
func (r *Registry) Register(a Asset) (*Asset, error) {
	if a.Name == "" {
		return nil, errors.New("asset name is required")
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if _, ok := categories[a.Category]; !ok {
		a.Category = CategoryModel
	}

	data, err := json.Marshal(&a)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to marshal asset")
	}
	err = r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(assetsBucket).Put([]byte(a.ID), data)
	})
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to store asset %q", a.ID)
	}

	r.mu.Lock()
	r.assets[a.ID] = &a
	r.mu.Unlock()
	return &a, nil
}

func (r *Registry) Get(id string) (*Asset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.assets[id]
	return a, ok
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.assets)
}

// ByCategory returns assets of the given category, sorted by name.
func (r *Registry) ByCategory(category string) []*Asset {
	return r.selectSorted(func(a *Asset) bool {
		return a.Category == category
	})
}

// ByTag returns assets carrying the tag, sorted by name.
func (r *Registry) ByTag(tag string) []*Asset {
	return r.selectSorted(func(a *Asset) bool {
		for _, t := range a.Tags {
			if t == tag {
				return true
			}
		}
		return false
	})
}

// ForPlatform returns assets usable on the platform, sorted by name. An
// asset with no platform list is usable everywhere.
func (r *Registry) ForPlatform(platform string) []*Asset {
	return r.selectSorted(func(a *Asset) bool {
		if len(a.Platforms) == 0 {
			return true
		}
		for _, p := range a.Platforms {
			if p == platform {
				return true
			}
		}
		return false
	})
}

func (r *Registry) selectSorted(match func(*Asset) bool) []*Asset {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var res []*Asset
	for _, a := range r.assets {
		if match(a) {
			res = append(res, a)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Name < res[j].Name
	})
	return res
}
