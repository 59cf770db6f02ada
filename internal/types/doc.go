/*
Package types defines the data structures shared by the console packages.

# Overview

The types package provides definitions for:
  - API resource records (ApiResource) and their write payload (ResourceInput)
  - The signed-in user's profile (UserProfile) and its write payload
  - Transient password change requests
  - Generic page envelopes (Page[T])
  - Badge classes derived from method and status
  - Activity journal entries
  - TLS settings for the backend transport

# Server Ownership

Resource ids and timestamps are owned by the backend. The console never
computes them; they are only decoded from responses. Records arrive with
either an "_id" or an "id" key and both are accepted.

# Enumerations

Method and Status are string types. Values outside the enumerations are
kept verbatim so an unexpected server value still renders, with the
default badge, instead of failing to decode.

# Timestamps

Timestamp decodes RFC3339, naive ISO-8601 (read as UTC) and RFC1123
values, which covers what the backend's JSON encoder emits.

# Field Tags

Types carry JSON and YAML tags so the CLI can print them in either format.
*/
package types
