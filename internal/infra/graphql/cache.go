package graphql

import (
	"sync"

	"quill/internal/domain/entity"

	"github.com/google/uuid"
)

const (
	typePost    = "posts"
	typeProfile = "profiles"
)

// recordKey is the normalized identity of a record.
func recordKey(typename string, id uuid.UUID) string {
	return typename + ":" + id.String()
}

type postRecord struct {
	post      entity.Post // Author is always nil; the author lives in profiles.
	authorKey string
}

type listing struct {
	keys       []string
	nextCursor entity.PageCursor
	hasMore    bool
}

// Cache is a normalized record cache: every post and profile is stored once
// by identity and shared by all listings that reference it.
type Cache struct {
	mu       sync.RWMutex
	posts    map[string]*postRecord
	profiles map[string]*entity.Profile
	// roots are profiles fetched directly; they survive garbage collection.
	roots    map[string]struct{}
	listings map[string]*listing
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		posts:    make(map[string]*postRecord),
		profiles: make(map[string]*entity.Profile),
		roots:    make(map[string]struct{}),
		listings: make(map[string]*listing),
	}
}

// WritePost upserts post and its author snapshot.
func (c *Cache) WritePost(post *entity.Post) {
	if post == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.writePostLocked(post)
}

func (c *Cache) writePostLocked(post *entity.Post) string {
	key := recordKey(typePost, post.ID)

	rec := &postRecord{post: *post}
	rec.post.Author = nil
	if post.AuthorID != uuid.Nil {
		rec.authorKey = recordKey(typeProfile, post.AuthorID)
	}
	c.posts[key] = rec

	if post.Author != nil {
		c.mergeAuthorLocked(post.Author)
	}

	return key
}

// mergeAuthorLocked writes the fields an author snapshot carries and keeps
// the rest of an existing profile record.
func (c *Cache) mergeAuthorLocked(author *entity.Profile) {
	key := recordKey(typeProfile, author.ID)

	existing, ok := c.profiles[key]
	if !ok {
		cp := *author
		c.profiles[key] = &cp

		return
	}

	existing.Username = author.Username
	existing.DisplayName = author.DisplayName
	existing.AvatarURL = author.AvatarURL
}

// readPost returns a copy of the cached post with its author resolved.
func (c *Cache) readPost(id uuid.UUID) (*entity.Post, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.readPostLocked(recordKey(typePost, id))
}

func (c *Cache) readPostLocked(key string) (*entity.Post, bool) {
	rec, ok := c.posts[key]
	if !ok {
		return nil, false
	}

	post := rec.post
	if author, ok := c.profiles[rec.authorKey]; ok {
		cp := *author
		post.Author = &cp
	}

	return &post, true
}

// WriteProfile upserts a full profile record and pins it as a root.
func (c *Cache) WriteProfile(profile *entity.Profile) {
	if profile == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := recordKey(typeProfile, profile.ID)
	cp := *profile
	c.profiles[key] = &cp
	c.roots[key] = struct{}{}
}

// readProfile returns a copy of a profile that was fetched directly. Author
// snapshots alone do not count, since they lack bio and website.
func (c *Cache) readProfile(id uuid.UUID) (*entity.Profile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	key := recordKey(typeProfile, id)
	if _, ok := c.roots[key]; !ok {
		return nil, false
	}

	profile, ok := c.profiles[key]
	if !ok {
		return nil, false
	}
	cp := *profile

	return &cp, true
}

// EvictPost removes the post from the cache and from every listing, then
// reclaims author records no longer referenced.
func (c *Cache) EvictPost(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := recordKey(typePost, id)
	delete(c.posts, key)

	for _, l := range c.listings {
		l.keys = removeKey(l.keys, key)
	}

	c.gcLocked()
}

func (c *Cache) gcLocked() {
	referenced := make(map[string]struct{}, len(c.posts))
	for _, rec := range c.posts {
		if rec.authorKey != "" {
			referenced[rec.authorKey] = struct{}{}
		}
	}

	for key := range c.profiles {
		if _, ok := referenced[key]; ok {
			continue
		}
		if _, ok := c.roots[key]; ok {
			continue
		}
		delete(c.profiles, key)
	}
}

// ResetListing replaces the listing with its first page.
func (c *Cache) ResetListing(name string, page *entity.PostPage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	l := &listing{}
	c.listings[name] = l
	c.appendLocked(l, page)
}

// AppendListing adds a following page to the listing. Posts already in the
// listing are updated in place and not repeated, so order is preserved.
func (c *Cache) AppendListing(name string, page *entity.PostPage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.listings[name]
	if !ok {
		l = &listing{}
		c.listings[name] = l
	}
	c.appendLocked(l, page)
}

func (c *Cache) appendLocked(l *listing, page *entity.PostPage) {
	seen := make(map[string]struct{}, len(l.keys)+len(page.Posts))
	for _, k := range l.keys {
		seen[k] = struct{}{}
	}

	for _, p := range page.Posts {
		key := c.writePostLocked(p)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		l.keys = append(l.keys, key)
	}

	l.nextCursor = page.NextCursor
	l.hasMore = page.HasMore
}

// Listing returns the accumulated listing.
func (c *Cache) Listing(name string) (*entity.PostPage, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	l, ok := c.listings[name]
	if !ok {
		return nil, false
	}

	page := &entity.PostPage{
		Posts:      make([]*entity.Post, 0, len(l.keys)),
		NextCursor: l.nextCursor,
		HasMore:    l.hasMore,
	}
	for _, key := range l.keys {
		if post, ok := c.readPostLocked(key); ok {
			page.Posts = append(page.Posts, post)
		}
	}

	return page, true
}

// NextCursor returns the cursor that continues the listing.
func (c *Cache) NextCursor(name string) (entity.PageCursor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	l, ok := c.listings[name]
	if !ok {
		return "", false
	}

	return l.nextCursor, true
}

// Stats reports record counts.
func (c *Cache) Stats() (posts, profiles, listings int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.posts), len(c.profiles), len(c.listings)
}

func removeKey(keys []string, key string) []string {
	out := keys[:0]
	for _, k := range keys {
		if k != key {
			out = append(out, k)
		}
	}

	return out
}
