package db

// SchemaSQL initializes the cleanlog tables. The facility name carries
// a BM25 full-text index so the match queries can rank candidates with
// search::score.
const SchemaSQL = `
    -- ==========================================================================
    -- FACILITY TABLE
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS facility SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS name ON facility TYPE string;
    DEFINE FIELD IF NOT EXISTS code ON facility TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS area ON facility TYPE string
        ASSERT $value IN ["critical", "semi_critical", "non_critical", "unspecified"]
        DEFAULT "unspecified";

    DEFINE ANALYZER IF NOT EXISTS facility_analyzer TOKENIZERS class FILTERS lowercase, ascii;
    DEFINE INDEX IF NOT EXISTS facility_name_ft ON facility FIELDS name FULLTEXT ANALYZER facility_analyzer BM25;

    -- ==========================================================================
    -- OPERATOR TABLE
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS operator SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS name ON operator TYPE string;

    -- ==========================================================================
    -- HISTORY TABLE
    -- ==========================================================================
    -- One row per cleaning event. The facility link makes the original
    -- embedded history array an explicit one-to-many relation.
    DEFINE TABLE IF NOT EXISTS history SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS facility ON history TYPE record<facility>;
    DEFINE FIELD IF NOT EXISTS at ON history TYPE datetime DEFAULT time::now();
    DEFINE FIELD IF NOT EXISTS start_time ON history TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS end_time ON history TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS detergent ON history TYPE bool DEFAULT false;
    DEFINE FIELD IF NOT EXISTS disinfectant ON history TYPE bool DEFAULT false;
    DEFINE FIELD IF NOT EXISTS wiper ON history TYPE bool DEFAULT false;
    DEFINE FIELD IF NOT EXISTS mop ON history TYPE bool DEFAULT false;
    DEFINE FIELD IF NOT EXISTS concurrent ON history TYPE bool DEFAULT false;
    DEFINE FIELD IF NOT EXISTS terminal ON history TYPE bool DEFAULT false;
    DEFINE FIELD IF NOT EXISTS observation ON history TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS operator ON history TYPE option<record<operator>>;

    DEFINE INDEX IF NOT EXISTS history_facility_at ON history FIELDS facility, at;
`
