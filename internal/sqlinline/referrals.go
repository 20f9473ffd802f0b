package sqlinline

const QInsertReferral = `--sql 330075b0-5f55-469e-9b76-1e03a73eaeec
insert into referrals(id, campaign_id, code, created_by, clicks, donation_count, created_at)
values (gen_random_uuid(), $1::uuid, $2::text, $3::uuid, 0, 0, now())
returning id;
`

const QResolveReferral = `--sql b46016dd-5eb6-4f30-a4ee-049f25f20a6c
update referrals
set clicks = clicks + 1
where code = $1::text
returning id, campaign_id, code, created_by, clicks, donation_count, created_at;
`

const QListReferralsByCampaign = `--sql 88b9cf4d-6f0b-4788-bdf8-cfed6591fe5c
select id, campaign_id, code, created_by, clicks, donation_count, created_at
from referrals
where campaign_id = $1::uuid
order by created_at desc;
`
