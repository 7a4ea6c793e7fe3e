package database

// Schema is the Postgres schema for the server.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
    id    BIGSERIAL PRIMARY KEY,
    name  TEXT NOT NULL,
    email TEXT NOT NULL,
    CONSTRAINT users_email_key UNIQUE (email)
);

CREATE TABLE IF NOT EXISTS requests (
    id           BIGSERIAL PRIMARY KEY,
    description  TEXT NOT NULL,
    requestor_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created      TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS items (
    id          BIGSERIAL PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT NOT NULL,
    available   BOOLEAN NOT NULL,
    owner_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    request_id  BIGINT REFERENCES requests(id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS bookings (
    id         BIGSERIAL PRIMARY KEY,
    start_date TIMESTAMPTZ NOT NULL,
    end_date   TIMESTAMPTZ NOT NULL,
    item_id    BIGINT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
    booker_id  BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    status     TEXT NOT NULL CHECK (status IN ('WAITING', 'APPROVED', 'REJECTED'))
);

CREATE TABLE IF NOT EXISTS comments (
    id        BIGSERIAL PRIMARY KEY,
    text      TEXT NOT NULL,
    item_id   BIGINT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
    author_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created   TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS items_owner_idx    ON items(owner_id);
CREATE INDEX IF NOT EXISTS items_request_idx  ON items(request_id);
CREATE INDEX IF NOT EXISTS bookings_item_idx   ON bookings(item_id);
CREATE INDEX IF NOT EXISTS bookings_booker_idx ON bookings(booker_id);
CREATE INDEX IF NOT EXISTS comments_item_idx   ON comments(item_id);
`
