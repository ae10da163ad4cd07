package resolver

import "github.com/fernql/fernql/internal/schema"

// BuildSchema declares the domain schema: record types, relation fields with
// their resolution strategy, root queries and mutations. The result is
// static metadata shared by every request.
func BuildSchema() *schema.Schema {
	uuid := schema.NamedType("UUID")
	str := schema.NamedType("String")
	float := schema.NamedType("Float")
	boolean := schema.NamedType("Boolean")
	memberTypeID := schema.NamedType("MemberTypeId")

	memberTypeIDEnum := schema.NewType("MemberTypeId", schema.TypeKindEnum).
		AddEnumValue("basic").
		AddEnumValue("business")

	memberType := schema.NewType("MemberType", schema.TypeKindObject).
		AddField(schema.NewField("id", memberTypeID, schema.ResolveSource)).
		AddField(schema.NewField("discount", float, schema.ResolveSource)).
		AddField(schema.NewField("postsLimitPerMonth", schema.NamedType("Int"), schema.ResolveSource))

	post := schema.NewType("Post", schema.TypeKindObject).
		AddField(schema.NewField("id", uuid, schema.ResolveSource)).
		AddField(schema.NewField("title", str, schema.ResolveSource)).
		AddField(schema.NewField("content", str, schema.ResolveSource)).
		AddField(schema.NewField("authorId", uuid, schema.ResolveSource))

	profile := schema.NewType("Profile", schema.TypeKindObject).
		AddField(schema.NewField("id", uuid, schema.ResolveSource)).
		AddField(schema.NewField("isMale", boolean, schema.ResolveSource)).
		AddField(schema.NewField("yearOfBirth", schema.NamedType("Int"), schema.ResolveSource)).
		AddField(schema.NewField("userId", uuid, schema.ResolveSource)).
		AddField(schema.NewField("memberTypeId", memberTypeID, schema.ResolveSource)).
		AddField(schema.NewField("memberType", schema.NamedType("MemberType"), schema.ResolveByKey))

	user := schema.NewType("User", schema.TypeKindObject).
		AddField(schema.NewField("id", uuid, schema.ResolveSource)).
		AddField(schema.NewField("name", str, schema.ResolveSource)).
		AddField(schema.NewField("balance", float, schema.ResolveSource)).
		AddField(schema.NewField("posts", schema.ListType(schema.NamedType("Post")), schema.ResolveByFilter)).
		AddField(schema.NewField("profile", schema.NamedType("Profile"), schema.ResolveByFilter)).
		AddField(schema.NewField("userSubscribedTo", schema.ListType(schema.NamedType("User")), schema.ResolveByEdge)).
		AddField(schema.NewField("subscribedToUser", schema.ListType(schema.NamedType("User")), schema.ResolveByEdge))

	createUserInput := schema.NewType("CreateUserInput", schema.TypeKindInputObject).
		AddInputField(schema.NewInputValue("name", schema.NonNullType(str))).
		AddInputField(schema.NewInputValue("balance", schema.NonNullType(float)))

	changeUserInput := schema.NewType("ChangeUserInput", schema.TypeKindInputObject).
		AddInputField(schema.NewInputValue("name", str)).
		AddInputField(schema.NewInputValue("balance", float))

	createPostInput := schema.NewType("CreatePostInput", schema.TypeKindInputObject).
		AddInputField(schema.NewInputValue("authorId", schema.NonNullType(uuid))).
		AddInputField(schema.NewInputValue("title", schema.NonNullType(str))).
		AddInputField(schema.NewInputValue("content", schema.NonNullType(str)))

	changePostInput := schema.NewType("ChangePostInput", schema.TypeKindInputObject).
		AddInputField(schema.NewInputValue("authorId", uuid)).
		AddInputField(schema.NewInputValue("title", str)).
		AddInputField(schema.NewInputValue("content", str))

	createProfileInput := schema.NewType("CreateProfileInput", schema.TypeKindInputObject).
		AddInputField(schema.NewInputValue("isMale", schema.NonNullType(boolean))).
		AddInputField(schema.NewInputValue("yearOfBirth", schema.NonNullType(schema.NamedType("Int")))).
		AddInputField(schema.NewInputValue("userId", schema.NonNullType(uuid))).
		AddInputField(schema.NewInputValue("memberTypeId", schema.NonNullType(memberTypeID)))

	changeProfileInput := schema.NewType("ChangeProfileInput", schema.TypeKindInputObject).
		AddInputField(schema.NewInputValue("isMale", boolean)).
		AddInputField(schema.NewInputValue("yearOfBirth", schema.NamedType("Int"))).
		AddInputField(schema.NewInputValue("memberTypeId", memberTypeID))

	query := schema.NewType("Query", schema.TypeKindObject).
		AddField(schema.NewField("user", schema.NamedType("User"), schema.ResolveByKey).
			AddArgument(schema.NewInputValue("id", schema.NonNullType(uuid)))).
		AddField(schema.NewField("users", schema.ListType(schema.NamedType("User")), schema.ResolveRoot)).
		AddField(schema.NewField("post", schema.NamedType("Post"), schema.ResolveByKey).
			AddArgument(schema.NewInputValue("id", schema.NonNullType(uuid)))).
		AddField(schema.NewField("posts", schema.ListType(schema.NamedType("Post")), schema.ResolveRoot)).
		AddField(schema.NewField("profile", schema.NamedType("Profile"), schema.ResolveByKey).
			AddArgument(schema.NewInputValue("id", schema.NonNullType(uuid)))).
		AddField(schema.NewField("profiles", schema.ListType(schema.NamedType("Profile")), schema.ResolveRoot)).
		AddField(schema.NewField("memberType", schema.NamedType("MemberType"), schema.ResolveByKey).
			AddArgument(schema.NewInputValue("id", schema.NonNullType(memberTypeID)))).
		AddField(schema.NewField("memberTypes", schema.ListType(schema.NamedType("MemberType")), schema.ResolveRoot))

	mutation := schema.NewType("Mutation", schema.TypeKindObject).
		AddField(schema.NewField("createUser", schema.NamedType("User"), schema.ResolveRoot).
			AddArgument(schema.NewInputValue("dto", schema.NonNullType(schema.NamedType("CreateUserInput"))))).
		AddField(schema.NewField("changeUser", schema.NamedType("User"), schema.ResolveRoot).
			AddArgument(schema.NewInputValue("id", schema.NonNullType(uuid))).
			AddArgument(schema.NewInputValue("dto", schema.NonNullType(schema.NamedType("ChangeUserInput"))))).
		AddField(schema.NewField("deleteUser", schema.NonNullType(boolean), schema.ResolveRoot).
			AddArgument(schema.NewInputValue("id", schema.NonNullType(uuid)))).
		AddField(schema.NewField("createPost", schema.NamedType("Post"), schema.ResolveRoot).
			AddArgument(schema.NewInputValue("dto", schema.NonNullType(schema.NamedType("CreatePostInput"))))).
		AddField(schema.NewField("changePost", schema.NamedType("Post"), schema.ResolveRoot).
			AddArgument(schema.NewInputValue("id", schema.NonNullType(uuid))).
			AddArgument(schema.NewInputValue("dto", schema.NonNullType(schema.NamedType("ChangePostInput"))))).
		AddField(schema.NewField("deletePost", schema.NonNullType(boolean), schema.ResolveRoot).
			AddArgument(schema.NewInputValue("id", schema.NonNullType(uuid)))).
		AddField(schema.NewField("createProfile", schema.NamedType("Profile"), schema.ResolveRoot).
			AddArgument(schema.NewInputValue("dto", schema.NonNullType(schema.NamedType("CreateProfileInput"))))).
		AddField(schema.NewField("changeProfile", schema.NamedType("Profile"), schema.ResolveRoot).
			AddArgument(schema.NewInputValue("id", schema.NonNullType(uuid))).
			AddArgument(schema.NewInputValue("dto", schema.NonNullType(schema.NamedType("ChangeProfileInput"))))).
		AddField(schema.NewField("deleteProfile", schema.NonNullType(boolean), schema.ResolveRoot).
			AddArgument(schema.NewInputValue("id", schema.NonNullType(uuid)))).
		AddField(schema.NewField("subscribeTo", schema.NamedType("User"), schema.ResolveRoot).
			AddArgument(schema.NewInputValue("userId", schema.NonNullType(uuid))).
			AddArgument(schema.NewInputValue("authorId", schema.NonNullType(uuid)))).
		AddField(schema.NewField("unsubscribeFrom", schema.NonNullType(boolean), schema.ResolveRoot).
			AddArgument(schema.NewInputValue("userId", schema.NonNullType(uuid))).
			AddArgument(schema.NewInputValue("authorId", schema.NonNullType(uuid))))

	return schema.New().
		SetQueryType("Query").
		SetMutationType("Mutation").
		AddType(memberTypeIDEnum).
		AddType(memberType).
		AddType(post).
		AddType(profile).
		AddType(user).
		AddType(createUserInput).
		AddType(changeUserInput).
		AddType(createPostInput).
		AddType(changePostInput).
		AddType(createProfileInput).
		AddType(changeProfileInput).
		AddType(query).
		AddType(mutation)
}
