// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package entity

// Built-in entity kinds served by the Connect API.
const (
	KindRoot       = "root"
	KindUser       = "user"
	KindMembership = "membership"
	KindClub       = "club"
)

// RootSchema describes the API entry point.
var RootSchema = NewSchema(KindRoot,
	Prop("currentUser"),
	Prop("users"),
	Prop("clubs"),
)

// UserSchema describes a user profile.
var UserSchema = NewSchema(KindUser,
	Prop("uuid"),
	Prop("username"),
	Prop("name"),
	Prop("email"),
	Prop("additionalEmails"),
	Prop("image"),
	Prop("biography"),
	Prop("birthdate"),
	Prop("city"),
	Prop("country"),
	Prop("company"),
	Prop("jobPosition"),
	Prop("url"),
	Prop("blogUrl"),
	Prop("feedUrl"),
	Prop("githubUsername"),
	Prop("twitterUsername"),
	Prop("linkedInUrl"),
	Prop("memberships"),
)

// MembershipSchema describes a user's membership of a club.
var MembershipSchema = NewSchema(KindMembership,
	Prop("club"),
	Prop("isPublic"),
	Prop("isOwner"),
)

// ClubSchema describes a club.
var ClubSchema = NewSchema(KindClub,
	Prop("uuid"),
	Prop("name"),
	Prop("slug"),
	Prop("email"),
	Prop("description"),
	Prop("type"),
	Prop("isPublic"),
	Prop("url"),
	Prop("image"),
	Prop("memberships"),
)
