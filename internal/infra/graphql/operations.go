package graphql

// Operation is a named GraphQL document.
type Operation struct {
	Name  string
	Query string
}

const postFields = `
fragment PostFields on posts {
  nodeId
  id
  title
  body
  created_at
  published
  user_id
  user: profiles {
    id
    username
    display_name
    avatar_url
  }
}`

const profileFields = `
fragment ProfileFields on profiles {
  nodeId
  id
  username
  display_name
  avatar_url
  bio
  website
  created_at
}`

var (
	GetPosts = Operation{
		Name: "GetPosts",
		Query: `query GetPosts($first: Int = 5, $after: Cursor) {
  postsCollection(
    filter: { published: { eq: true } }
    orderBy: [{ created_at: DescNullsLast }]
    first: $first
    after: $after
  ) {
    edges { node { ...PostFields } }
    pageInfo { hasNextPage endCursor }
  }
}` + postFields,
	}

	GetPostByID = Operation{
		Name: "GetPostById",
		Query: `query GetPostById($id: UUID!) {
  postsCollection(filter: { id: { eq: $id } }) {
    edges { node { ...PostFields } }
  }
}` + postFields,
	}

	GetUserPosts = Operation{
		Name: "GetUserPosts",
		Query: `query GetUserPosts($userId: UUID!, $first: Int = 5, $after: Cursor) {
  postsCollection(
    filter: { user_id: { eq: $userId } }
    orderBy: [{ created_at: DescNullsLast }]
    first: $first
    after: $after
  ) {
    edges { node { ...PostFields } }
    pageInfo { hasNextPage endCursor }
  }
}` + postFields,
	}

	GetProfile = Operation{
		Name: "GetProfile",
		Query: `query GetProfile($id: UUID!) {
  profilesCollection(filter: { id: { eq: $id } }) {
    edges { node { ...ProfileFields } }
  }
}` + profileFields,
	}

	CreatePost = Operation{
		Name: "CreatePost",
		Query: `mutation CreatePost($title: String!, $body: String!, $published: Boolean = true, $user_id: UUID!) {
  insertIntopostsCollection(
    objects: [{ title: $title, body: $body, published: $published, user_id: $user_id }]
  ) {
    records { ...PostFields }
  }
}` + postFields,
	}

	UpdatePost = Operation{
		Name: "UpdatePost",
		Query: `mutation UpdatePost($id: UUID!, $title: String!, $body: String!, $published: Boolean) {
  updatepostsCollection(
    set: { title: $title, body: $body, published: $published }
    filter: { id: { eq: $id } }
  ) {
    records { ...PostFields }
  }
}` + postFields,
	}

	DeletePost = Operation{
		Name: "DeletePost",
		Query: `mutation DeletePost($id: UUID!) {
  deleteFrompostsCollection(filter: { id: { eq: $id } }) {
    records { id }
  }
}`,
	}

	// UpdateProfile sends only the fields present in $set so omitted fields stay untouched.
	UpdateProfile = Operation{
		Name: "UpdateProfile",
		Query: `mutation UpdateProfile($id: UUID!, $set: profilesUpdateInput!) {
  updateprofilesCollection(set: $set, filter: { id: { eq: $id } }) {
    records { ...ProfileFields }
  }
}` + profileFields,
	}
)
